package services

import "TravelMate/models"

const (
	barsFilter  = "bar, pub, cocktail lounge"
	clubsFilter = "night club, dance club, disco"
)

// PlanSearchTasks derives the ordered search tasks for a set of quotas. The
// order of the result is the order places end up in before dedup.
//
// Nightlife is split into two attraction searches of half the requested
// count each (at least one), so odd or small counts are not matched exactly.
func PlanSearchTasks(quotas models.CategoryQuotas) []models.SearchTask {
	tasks := []models.SearchTask{
		{Category: models.CategoryHotel, Quota: quotas.HotelCount},
	}

	if quotas.NightlifeCount > 0 {
		half := max(1, quotas.NightlifeCount/2)
		bars, clubs := barsFilter, clubsFilter
		tasks = append(tasks,
			models.SearchTask{Category: models.CategoryAttraction, SubFilter: &bars, Quota: half},
			models.SearchTask{Category: models.CategoryAttraction, SubFilter: &clubs, Quota: half},
		)
	}

	tasks = append(tasks,
		models.SearchTask{Category: models.CategoryRestaurant, Quota: quotas.RestaurantCount},
		models.SearchTask{Category: models.CategoryAttraction, Quota: quotas.AttractionCount},
	)
	return tasks
}
