package reviews

import (
	"sort"

	"github.com/nextdentist/booking-service/internal/domain"
	"github.com/nextdentist/booking-service/internal/service/reviews/models"
)

// computeOverall считает среднюю общую оценку по одобренным отзывам.
// Пустой список даёт 0 — витрина показывает "нет оценок", а не NaN
func computeOverall(approved []*domain.Review) (rating float64, total int) {
	if len(approved) == 0 {
		return 0, 0
	}

	var sum float64
	for _, r := range approved {
		sum += r.Rating
	}

	return sum / float64(len(approved)), len(approved)
}

// computeCategoryAverages считает средние по категориям среди одобренных
// отзывов, группируя по отображаемому имени категории
func computeCategoryAverages(approved []*domain.Review) []models.CategoryAverage {
	type bucket struct {
		sum   float64
		count int
	}

	buckets := make(map[string]*bucket)
	for _, r := range approved {
		for _, sr := range r.SubRatings {
			name := sr.Category.DisplayName()
			b, ok := buckets[name]
			if !ok {
				b = &bucket{}
				buckets[name] = b
			}
			b.sum += sr.Value
			b.count++
		}
	}

	if len(buckets) == 0 {
		return nil
	}

	result := make([]models.CategoryAverage, 0, len(buckets))
	for name, b := range buckets {
		result = append(result, models.CategoryAverage{
			Category: name,
			Average:  b.sum / float64(b.count),
			Count:    b.count,
		})
	}

	// Детерминированный порядок для API и логов
	sort.Slice(result, func(i, j int) bool {
		return result[i].Category < result[j].Category
	})

	return result
}
