package services

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Jomachado2002/Zennelectronica-sub006/internal/interfaces"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/models"
)

// PaymentJob queue'da işlenecek saldo ödemesi
type PaymentJob struct {
	UserID     int
	Request    *models.PayWithBalanceRequest
	ResultChan chan PaymentResult
}

// PaymentResult job sonucu
type PaymentResult struct {
	Response *models.PayWithBalanceResponse
	Error    error
}

// WalletQueue saldo ödemelerini işleyen worker queue'su
type WalletQueue struct {
	jobChan        chan PaymentJob
	workers        int
	bufferSize     int
	wg             sync.WaitGroup
	bancardService interfaces.BancardServiceInterface
}

// NewWalletQueue yeni queue oluşturur
func NewWalletQueue(workers int, bancardService interfaces.BancardServiceInterface, bufferSize int) *WalletQueue {
	return &WalletQueue{
		jobChan:        make(chan PaymentJob, bufferSize),
		workers:        workers,
		bufferSize:     bufferSize,
		bancardService: bancardService,
	}
}

// Start worker'ları başlatır
func (q *WalletQueue) Start() {
	log.Info().
		Int("workers", q.workers).
		Int("buffer_size", q.bufferSize).
		Msg("🔄 Cüzdan queue başlatıldı")

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}
}

// Stop queue'yu durdurur, kalan job'ların bitmesini bekler
func (q *WalletQueue) Stop() {
	close(q.jobChan)
	q.wg.Wait()
	log.Info().Msg("⏹️ Cüzdan queue durduruldu")
}

// worker tek bir worker'ın işlem döngüsü
func (q *WalletQueue) worker(id int) {
	defer q.wg.Done()

	// Panic recovery
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("recover", r).
				Int("worker_id", id).
				Msg("🚨 Worker panikledi ama toparlandı")
		}
	}()

	log.Info().Int("worker_id", id).Msg("🚀 Worker başlatıldı")

	for job := range q.jobChan {
		log.Debug().
			Int("worker_id", id).
			Int("user_id", job.UserID).
			Float64("amount", job.Request.Amount).
			Msg("💼 Saldo ödemesi işleniyor")

		response, err := q.bancardService.PayWithBalance(job.UserID, job.Request)

		job.ResultChan <- PaymentResult{
			Response: response,
			Error:    err,
		}
		close(job.ResultChan)

		if err != nil {
			log.Error().Err(err).Int("worker_id", id).Msg("❌ Saldo ödemesi başarısız")
		} else {
			log.Info().Int("worker_id", id).Str("ref", response.TransactionRef).Msg("✅ Saldo ödemesi başarılı")
		}
	}

	log.Info().Int("worker_id", id).Msg("🛑 Worker durduruldu")
}

// AddJob queue'ya yeni ödeme job'ı ekler
func (q *WalletQueue) AddJob(userID int, req *models.PayWithBalanceRequest) <-chan PaymentResult {
	resultChan := make(chan PaymentResult, 1)

	job := PaymentJob{
		UserID:     userID,
		Request:    req,
		ResultChan: resultChan,
	}

	select {
	case q.jobChan <- job:
		log.Debug().Int("user_id", userID).Msg("📤 Job queue'ya eklendi")
	default:
		// Queue dolu
		go func() {
			resultChan <- PaymentResult{
				Response: nil,
				Error:    fmt.Errorf("ödeme queue'su dolu, daha sonra tekrar deneyin"),
			}
			close(resultChan)
		}()
	}

	return resultChan
}
