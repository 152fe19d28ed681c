package on_engagement_removed

import "github.com/m04kA/gig-conflicts/internal/domain"

// Request модель запроса на очистку конфликтов удаленного обязательства
type Request struct {
	OwnerID      string
	EngagementID string
}

// Response модель ответа
type Response struct {
	Removed int64                    // Сколько записей удалено (включая решенные)
	Active  []*domain.ConflictRecord // Оставшиеся нерешенные конфликты владельца
}
