package config

type App struct {
	Env   string `json:"env" yaml:"env"`
	Debug bool   `json:"debug" yaml:"debug"`
	// InternalToken 内部服务（任务、番茄钟）调用发放碎片接口时携带的令牌
	InternalToken string `json:"-" yaml:"internal_token"`
}
