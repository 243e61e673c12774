package errors

// ErrorConfig error handling middleware ayarları
type ErrorConfig struct {
	ShowStackTrace bool           // Stack trace'i response'da göster mi (sadece development)
	CustomErrorMap map[int]string // Status code'a göre custom mesajlar
	MaxErrorLength int            // Error mesajının maksimum uzunluğu
}

// DefaultErrorConfig varsayılan error handling ayarları
func DefaultErrorConfig() *ErrorConfig {
	return &ErrorConfig{
		ShowStackTrace: false,
		CustomErrorMap: map[int]string{
			400: "Geçersiz istek. Lütfen parametrelerinizi kontrol edin.",
			401: "Yetkilendirme gerekli. Lütfen giriş yapın.",
			404: "Aradığınız kaynak bulunamadı.",
			409: "Çakışma. Bu işlem şu anda gerçekleştirilemiyor.",
			429: "Çok fazla istek. Lütfen daha sonra tekrar deneyin.",
			500: "Sunucu hatası. Bu durum teknik ekibimize bildirildi.",
		},
		MaxErrorLength: 500,
	}
}

// DevelopmentErrorConfig development ortamı için ayarlar
func DevelopmentErrorConfig() *ErrorConfig {
	config := DefaultErrorConfig()
	config.ShowStackTrace = true
	config.MaxErrorLength = 2000
	return config
}

// ProductionErrorConfig production ortamı için güvenli ayarlar
func ProductionErrorConfig() *ErrorConfig {
	config := DefaultErrorConfig()
	config.ShowStackTrace = false
	config.CustomErrorMap[500] = "Bir hata oluştu. Teknik ekibimiz bilgilendirildi."
	config.MaxErrorLength = 200
	return config
}

// MessageFor status code için yapılandırılmış mesajı döner
func (c *ErrorConfig) MessageFor(statusCode int) string {
	if msg, ok := c.CustomErrorMap[statusCode]; ok {
		return msg
	}
	return "Beklenmeyen bir hata oluştu."
}
