package service

import (
	"Focus/config"
	"Focus/dao"
	"Focus/dao/daotest"
	"Focus/models"
	"Focus/pkg/idgen"
	"Focus/pkg/locker"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, _ []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return nil
}

func (p *recordingPublisher) count(topic string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, t := range p.topics {
		if t == topic {
			n++
		}
	}
	return n
}

// fixedSource 依次返回预设的随机数
type fixedSource struct {
	values []float64
	i      int
}

func (f *fixedSource) NextUniform() float64 {
	v := f.values[f.i%len(f.values)]
	f.i++
	return v
}

type testEnv struct {
	db         *gorm.DB
	ledger     *LedgerService
	redemption *RedemptionService
	lottery    *LotteryService
	stats      *StatisticsService
	rewards    *dao.Reward
	events     *recordingPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := daotest.NewDB(t)
	conf, err := config.Parse(nil)
	require.NoError(t, err)

	gen, err := idgen.New(1, "test-salt")
	require.NoError(t, err)

	fragmentDAO := dao.NewFragment(db)
	lotteryDAO := dao.NewLottery(db)
	redemptionDAO := dao.NewRedemption(db)
	rewards := dao.NewReward(db)
	events := &recordingPublisher{}

	ledger := NewLedgerService(conf, dao.NewTxManager(db), fragmentDAO, dao.NewUsers(db), locker.NewLocal())
	return &testEnv{
		db:         db,
		ledger:     ledger,
		redemption: NewRedemptionService(ledger, rewards, redemptionDAO, gen, events),
		lottery:    NewLotteryService(ledger, lotteryDAO, NewRandomSource(42), events),
		stats:      NewStatisticsService(fragmentDAO, lotteryDAO, redemptionDAO),
		rewards:    rewards,
		events:     events,
	}
}

// fund 创建用户并入账初始余额
func (e *testEnv) fund(t *testing.T, userID uint64, amount int64) {
	t.Helper()
	daotest.CreateUser(t, e.db, userID)
	if amount > 0 {
		_, err := e.ledger.Credit(context.Background(), CreditRequest{UserID: userID, Amount: amount, Reason: "focus_session"})
		require.NoError(t, err)
	}
}

func (e *testEnv) balance(t *testing.T, userID uint64) int64 {
	t.Helper()
	b, err := e.ledger.GetBalance(context.Background(), userID)
	require.NoError(t, err)
	return b
}

func (e *testEnv) entries(t *testing.T, userID uint64) []models.LedgerEntry {
	t.Helper()
	var entries []models.LedgerEntry
	require.NoError(t, e.db.Where("user_id = ?", userID).Order("id ASC").Find(&entries).Error)
	return entries
}

// assertReconciled balance、累计值、流水合计三者一致
func (e *testEnv) assertReconciled(t *testing.T, userID uint64) {
	t.Helper()
	result, err := e.ledger.Reconcile(context.Background(), userID)
	require.NoError(t, err)
	require.True(t, result.Consistent)
	require.GreaterOrEqual(t, result.Balance, int64(0))
}
