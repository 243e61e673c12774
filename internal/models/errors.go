package models

import (
	"errors"
	"fmt"
)

// InsufficientBalanceError spend miktarı mevcut saldoyu aştığında döner.
// Cüzdan değişmeden kalır; aynı miktarla retry edilmemelidir.
type InsufficientBalanceError struct {
	CurrentBalance float64
	RequiredAmount float64
}

// Error InsufficientBalanceError'un error interface implementation'ı
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("yetersiz bakiye. Mevcut: %.0f Gs., gereken: %.0f Gs.", e.CurrentBalance, e.RequiredAmount)
}

// Deficit eksik kalan miktarı döner
func (e *InsufficientBalanceError) Deficit() float64 {
	return e.RequiredAmount - e.CurrentBalance
}

var (
	// ErrDuplicateBalance get-or-create yarışında unique constraint ihlali.
	// Çağıran plain lookup olarak retry etmelidir.
	ErrDuplicateBalance = errors.New("bu kullanıcı için bakiye kaydı zaten mevcut")

	// ErrPersistenceConflict eşzamanlı bir yazma read snapshot'ını geçersiz kıldı.
	// Çağıran bakiyeyi yeniden okuyup operasyonun tamamını retry etmelidir.
	ErrPersistenceConflict = errors.New("bakiye kaydı eşzamanlı bir işlem tarafından değiştirildi")

	// ErrBalanceNotFound bakiye kaydı bulunamadı
	ErrBalanceNotFound = errors.New("bakiye kaydı bulunamadı")
)
