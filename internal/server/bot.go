package server

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/digichlist/digichlist-bot/internal/service"
	"github.com/digichlist/digichlist-bot/telegram"
)

// BotServer receives updates from the Telegram long-poll client and hands
// each one to the dispatcher on its own goroutine. A panic in one update
// never takes down the loop.
type BotServer struct {
	client     *telegram.Client
	dispatcher *service.Dispatcher
	log        *zap.Logger

	// Update deduplication cache
	seenMu  sync.RWMutex
	seen    map[int64]time.Time // update id -> first seen
	updates sync.WaitGroup
}

// NewBotServer creates a new bot server
func NewBotServer(client *telegram.Client, dispatcher *service.Dispatcher, log *zap.Logger) *BotServer {
	return &BotServer{
		client:     client,
		dispatcher: dispatcher,
		log:        log,
		seen:       make(map[int64]time.Time),
	}
}

// Start blocks on the polling loop until Stop is called
func (s *BotServer) Start() error {
	s.client.OnUpdate(s.handleUpdate)
	return s.client.Start()
}

// Stop shuts down polling and waits for in-flight updates to finish
func (s *BotServer) Stop() {
	s.client.Stop()
	s.updates.Wait()
}

func (s *BotServer) handleUpdate(update *telegram.Update) {
	if s.isUpdateSeen(update.UpdateID) {
		s.log.Debug("duplicate update ignored", zap.Int64("update_id", update.UpdateID))
		return
	}
	s.markUpdateSeen(update.UpdateID)

	s.updates.Add(1)
	go func() {
		defer s.updates.Done()
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("update handler panicked",
					zap.Int64("update_id", update.UpdateID),
					zap.Any("panic", r))
			}
		}()

		ctx := context.Background()

		// Acknowledge callbacks right away so the client stops its spinner
		// even when processing takes a moment.
		if update.CallbackQuery != nil {
			if err := s.client.AnswerCallbackQuery(ctx, update.CallbackQuery.ID); err != nil {
				s.log.Warn("callback ack failed",
					zap.Int64("update_id", update.UpdateID),
					zap.Error(err))
			}
		}

		s.dispatcher.Dispatch(ctx, update)
	}()
}

func (s *BotServer) isUpdateSeen(id int64) bool {
	s.seenMu.RLock()
	defer s.seenMu.RUnlock()
	_, ok := s.seen[id]
	return ok
}

// maxSeenUpdates caps the dedup cache size
const maxSeenUpdates = 10000

func (s *BotServer) markUpdateSeen(id int64) {
	s.seenMu.Lock()
	defer s.seenMu.Unlock()

	s.seen[id] = time.Now()
	if len(s.seen) <= maxSeenUpdates {
		return
	}

	// Drop aged entries first, then the oldest until back under the cap, so
	// a burst inside the age window cannot grow the map without bound.
	cutoff := time.Now().Add(-time.Hour)
	for k, t := range s.seen {
		if t.Before(cutoff) {
			delete(s.seen, k)
		}
	}
	for len(s.seen) > maxSeenUpdates {
		var oldestID int64
		var oldestAt time.Time
		first := true
		for k, t := range s.seen {
			if k == id {
				continue
			}
			if first || t.Before(oldestAt) {
				oldestID = k
				oldestAt = t
				first = false
			}
		}
		delete(s.seen, oldestID)
	}
}
