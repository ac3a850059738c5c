package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/opsdeck/backoffice/internal/kafka"
)

// AuditManager batches audit entries and hands the batches to a worker pool
// that publishes them to the audit topic. Entries are best-effort: a full
// pipeline falls back to logging, never to blocking a request.
type AuditManager struct {
	workerCount int
	batchSize   int
	timeout     time.Duration

	producer kafka.Producer
	topic    string
	logger   *zap.Logger

	inputChan  chan AuditLogEntry
	batchChan  chan []AuditLogEntry
	shutdownCh chan struct{}
	once       sync.Once
	wg         sync.WaitGroup
}

func NewAuditManager(producer kafka.Producer, topic string, workerCount, batchSize int, timeout time.Duration, logger *zap.Logger) *AuditManager {
	return &AuditManager{
		workerCount: workerCount,
		batchSize:   batchSize,
		timeout:     timeout,
		producer:    producer,
		topic:       topic,
		logger:      logger,
		inputChan:   make(chan AuditLogEntry, workerCount*batchSize*2),
		batchChan:   make(chan []AuditLogEntry, workerCount*2),
		shutdownCh:  make(chan struct{}),
	}
}

func (m *AuditManager) Start(ctx context.Context) {
	m.wg.Add(1)
	go m.runAggregator()

	for i := 0; i < m.workerCount; i++ {
		i := i
		m.wg.Add(1)
		go m.runWorker(ctx, i)
	}

	go func() {
		<-ctx.Done()
		m.Shutdown(context.Background())
	}()
}

func (m *AuditManager) Shutdown(ctx context.Context) {
	m.once.Do(func() {
		m.logger.Info("shutting down audit manager")
		close(m.shutdownCh)

		done := make(chan struct{})
		go func() {
			m.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			m.logger.Info("audit manager drained")
		case <-ctx.Done():
			m.logger.Warn("audit manager shutdown interrupted")
		}

		if err := m.producer.Close(); err != nil {
			m.logger.Error("failed to close audit producer", zap.Error(err))
		}
	})
}

// LogEntry enqueues an entry without blocking the request path.
func (m *AuditManager) LogEntry(entry AuditLogEntry) {
	select {
	case m.inputChan <- entry:
	default:
		m.logger.Warn("audit pipeline full, dropping to log",
			zap.String("event_id", entry.EventID),
			zap.String("path", entry.Path))
	}
}

func (m *AuditManager) runAggregator() {
	defer m.wg.Done()

	var (
		batch    []AuditLogEntry
		timer    *time.Timer
		timeoutC <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
		if len(batch) > 0 {
			m.dispatchBatch(batch)
		}
		close(m.batchChan)
	}()

	for {
		select {
		case entry := <-m.inputChan:
			batch = append(batch, entry)
			if len(batch) >= m.batchSize {
				m.dispatchBatch(batch)
				batch = nil
				timeoutC = nil
			} else if len(batch) == 1 {
				timer = time.NewTimer(m.timeout)
				timeoutC = timer.C
			}

		case <-timeoutC:
			m.dispatchBatch(batch)
			batch = nil
			timeoutC = nil

		case <-m.shutdownCh:
			return
		}
	}
}

func (m *AuditManager) dispatchBatch(batch []AuditLogEntry) {
	batchCopy := make([]AuditLogEntry, len(batch))
	copy(batchCopy, batch)

	select {
	case m.batchChan <- batchCopy:
	default:
		m.publishBatch(context.Background(), batchCopy)
	}
}

func (m *AuditManager) runWorker(ctx context.Context, id int) {
	defer m.wg.Done()
	m.logger.Debug("audit worker started", zap.Int("worker", id))

	for batch := range m.batchChan {
		m.publishBatch(ctx, batch)
	}
	m.logger.Debug("audit worker exiting", zap.Int("worker", id))
}

func (m *AuditManager) publishBatch(ctx context.Context, batch []AuditLogEntry) {
	for _, entry := range batch {
		payload, err := json.Marshal(entry)
		if err != nil {
			m.logger.Error("failed to marshal audit entry", zap.Error(err))
			continue
		}
		if err := m.producer.SendMessage(ctx, m.topic, []byte(entry.EventID), payload); err != nil {
			m.logger.Warn("failed to publish audit entry",
				zap.String("event_id", entry.EventID),
				zap.Error(err))
		}
	}
}
