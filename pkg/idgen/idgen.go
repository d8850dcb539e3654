package idgen

import (
	"Focus/config"
	"Focus/pkg/log"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/speps/go-hashids/v2"
	"go.uber.org/zap"
)

// Generator 生成兑换单号，并把单号编码成对外展示的凭证码
type Generator struct {
	node   *snowflake.Node
	hashid *hashids.HashID
}

func New(nodeID int64, salt string) (*Generator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}

	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 12
	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, err
	}
	return &Generator{node: node, hashid: h}, nil
}

func (g *Generator) GenID() uint64 {
	return uint64(g.node.Generate().Int64())
}

// Code 凭证码，不暴露自增规律
func (g *Generator) Code(id uint64) string {
	e, err := g.hashid.EncodeInt64([]int64{int64(id)})
	if err != nil {
		return ""
	}
	return e
}

// ParseCode Code 的逆操作
func (g *Generator) ParseCode(code string) (uint64, error) {
	ids, err := g.hashid.DecodeInt64WithError(code)
	if err != nil {
		return 0, err
	}
	if len(ids) != 1 || ids[0] <= 0 {
		return 0, errors.New("invalid redemption code")
	}
	return uint64(ids[0]), nil
}

// NewGenerator 按配置创建，节点号非法时直接退出
func NewGenerator(conf *config.Config) *Generator {
	g, err := New(conf.Reward.SnowflakeNode, conf.Reward.HashSalt)
	if err != nil {
		log.L.Fatal("init id generator failed", zap.Error(err))
	}
	return g
}
