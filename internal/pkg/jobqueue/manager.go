package jobqueue

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/poiuyt183/efunny-learn-sub001/app/models"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/database"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/env"
)

// Manager manages the global job queue and background tasks
type Manager struct {
	queue        *Queue
	expiryTicker *time.Ticker
	stopCh       chan struct{}
	wg           sync.WaitGroup
	mu           sync.Mutex
	running      bool
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// GetManager returns the global job queue manager (singleton)
func GetManager() *Manager {
	managerOnce.Do(func() {
		workerCount := 3
		if v, err := strconv.Atoi(env.GetEnv("JOB_QUEUE_WORKERS", "")); err == nil && v > 0 {
			workerCount = v
		}

		globalManager = &Manager{
			queue:  NewQueue(workerCount),
			stopCh: make(chan struct{}),
		}
	})
	return globalManager
}

// GetQueue returns the managed job queue
func (m *Manager) GetQueue() *Queue {
	return m.queue
}

// Start starts the job queue and background tasks
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	// Recreate stop channel for each start cycle so manager can be restarted safely.
	m.stopCh = make(chan struct{})
	m.running = true
	log.Info("[JobQueue Manager] Starting job queue and background tasks")

	// Start the job queue
	m.queue.Start()

	// Close out pending payments that never received their transfer
	m.expiryTicker = time.NewTicker(expirySweepInterval())
	m.wg.Add(1)
	go m.expiryWorker()

	log.Info("[JobQueue Manager] Started successfully")
}

// Stop stops the job queue and background tasks
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	log.Info("[JobQueue Manager] Stopping job queue and background tasks...")

	if m.expiryTicker != nil {
		m.expiryTicker.Stop()
	}

	// Signal workers to stop
	close(m.stopCh)
	m.stopCh = nil
	m.running = false

	// Wait for background workers to finish
	m.wg.Wait()

	// Stop the job queue
	m.queue.Stop()

	log.Info("[JobQueue Manager] Stopped successfully")
}

// expiryWorker runs periodically to fail pending payments past the stale window
func (m *Manager) expiryWorker() {
	defer m.wg.Done()
	log.Infof("[JobQueue Manager] Started payment expiry worker (interval: %s)", expirySweepInterval())

	for {
		select {
		case <-m.stopCh:
			log.Info("[JobQueue Manager] Payment expiry worker stopping")
			return
		case <-m.expiryTicker.C:
			if err := m.expireStalePayments(); err != nil {
				log.Errorf("[JobQueue Manager] Payment expiry error: %v", err)
			}
		}
	}
}

// expireStalePayments moves long-pending payments to FAILED. The update is
// conditional on the PENDING status, so a transfer that settles concurrently
// wins the race.
func (m *Manager) expireStalePayments() error {
	staleHours := 24
	if v, err := strconv.Atoi(env.GetEnv("PAYMENT_STALE_HOURS", "")); err == nil && v > 0 {
		staleHours = v
	}
	cutoff := time.Now().Add(-time.Duration(staleHours) * time.Hour)

	result := database.GetDB().Model(&models.PendingPayment{}).
		Where("status = ? AND created_at < ?", models.PaymentStatusPending, cutoff).
		Update("status", models.PaymentStatusFailed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		log.Infof("[JobQueue Manager] Expired %d stale pending payments", result.RowsAffected)
	}
	return nil
}

func expirySweepInterval() time.Duration {
	if v, err := strconv.Atoi(env.GetEnv("PAYMENT_EXPIRY_SWEEP_MINUTES", "")); err == nil && v > 0 {
		return time.Duration(v) * time.Minute
	}
	return 15 * time.Minute
}

// IsRunning returns whether the manager is currently running
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}
