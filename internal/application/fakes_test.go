package application

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/ward-admin/internal/domain/entity"
)

type fakePresence struct {
	mu     sync.Mutex
	marked map[int64]time.Duration
	err    error
}

func newFakePresence() *fakePresence { return &fakePresence{marked: map[int64]time.Duration{}} }

func (p *fakePresence) MarkOnline(_ context.Context, id int64, ttl time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.marked[id] = ttl
	return nil
}

func (p *fakePresence) Online(_ context.Context, ids []int64) (map[int64]bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	out := map[int64]bool{}
	for _, id := range ids {
		_, ok := p.marked[id]
		out[id] = ok
	}
	return out, nil
}

type fakeIndex struct {
	indexed []entity.User
	batches [][]entity.User
	err     error
}

func (x *fakeIndex) IndexMany(_ context.Context, users []entity.User) error {
	if x.err != nil {
		return x.err
	}
	x.batches = append(x.batches, append([]entity.User(nil), users...))
	return nil
}

func (x *fakeIndex) Index(_ context.Context, u entity.User) error {
	x.indexed = append(x.indexed, u)
	return x.err
}

func (x *fakeIndex) Search(_ context.Context, q string, role entity.Role, _ int) ([]map[string]any, error) {
	return []map[string]any{{"q": q, "role": string(role)}}, nil
}

type fakeNotifier struct {
	approved []entity.User
}

func (n *fakeNotifier) NotifyApproved(_ context.Context, u entity.User) error {
	n.approved = append(n.approved, u)
	return errors.New("queue down")
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
