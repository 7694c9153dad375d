package dao

import (
	"context"
	"time"

	"github.com/haierkeys/trade-journal-service/internal/domain"
	"github.com/haierkeys/trade-journal-service/internal/model"
	"github.com/haierkeys/trade-journal-service/pkg/idgen"
	"github.com/haierkeys/trade-journal-service/pkg/timex"
	"gorm.io/gorm"
)

// sessionRepository 实现 domain.SessionRepository 接口
type sessionRepository struct {
	dao *Dao
}

// NewSessionRepository 创建 SessionRepository 实例
func NewSessionRepository(dao *Dao) domain.SessionRepository {
	return &sessionRepository{dao: dao}
}

func (r *sessionRepository) session(ctx context.Context) *gorm.DB {
	return r.dao.UseTableWithOnceFunc(ctx, func(g *gorm.DB) {
		r.dao.Migrate(g, "Session")
	}, "session#session").Model(&model.Session{})
}

func (r *sessionRepository) toDomain(m *model.Session) *domain.Session {
	return &domain.Session{
		ID:        m.ID,
		UserID:    m.UserID,
		IP:        m.IP,
		UserAgent: m.UserAgent,
		ExpiresAt: time.Time(m.ExpiresAt),
		CreatedAt: time.Time(m.CreatedAt),
	}
}

// Create 创建会话，ID 为空时生成 ULID
func (r *sessionRepository) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	m := &model.Session{
		ID:        s.ID,
		UserID:    s.UserID,
		IP:        s.IP,
		UserAgent: s.UserAgent,
		ExpiresAt: timex.Time(s.ExpiresAt),
		CreatedAt: timex.Now(),
	}
	if m.ID == "" {
		m.ID = idgen.ULID()
	}
	if err := r.session(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	var m model.Session
	if err := r.session(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	return r.session(ctx).Where("id = ?", id).Delete(&model.Session{}).Error
}

// DeleteExpired 删除过期会话
func (r *sessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res := r.session(ctx).Where("expires_at <= ?", timex.Time(before)).Delete(&model.Session{})
	return res.RowsAffected, res.Error
}

var _ domain.SessionRepository = (*sessionRepository)(nil)
