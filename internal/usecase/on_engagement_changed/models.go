package on_engagement_changed

import (
	"github.com/m04kA/gig-conflicts/internal/domain"
)

// Request модель запроса на пересчет конфликтов после изменения обязательства
type Request struct {
	OwnerID    string             // ID владельца (исполнителя)
	Engagement *domain.Engagement // Измененное обязательство в актуальном состоянии
}

// Response модель ответа: актуальный набор нерешенных конфликтов владельца
type Response struct {
	Active             []*domain.ConflictRecord // Нерешенные конфликты, critical первым
	Detected           int                      // Сколько пар записано в этом проходе
	Purged             int64                    // Сколько устаревших записей удалено
	BlocksConfirmation bool                     // Есть нерешенный critical конфликт
}

// Options параметры сканирования
type Options struct {
	ScanWindowDays       int // 0 = только тот же день, 1 = ±1 день
	MaxParallelEstimates int // Ограничение параллельных обращений к оценщику
}

// DefaultOptions возвращает параметры по умолчанию
func DefaultOptions() Options {
	return Options{
		ScanWindowDays:       domain.DefaultScanWindowDays,
		MaxParallelEstimates: domain.DefaultMaxParallelEstimates,
	}
}

// pairFinding результат анализа одной пары
type pairFinding struct {
	candidate *domain.Engagement
	finding   domain.ConflictFinding
}
