package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Dilshanrad22/mind-case-backend/server/auth"
	apierr "github.com/Dilshanrad22/mind-case-backend/server/internal/errors"
	"github.com/Dilshanrad22/mind-case-backend/store"
)

type foodRequest struct {
	Name     string `json:"name"`
	Calories int32  `json:"calories"`
	Quantity int32  `json:"quantity"`
}

type foodView struct {
	ID       int32  `json:"id"`
	Name     string `json:"name"`
	Calories int32  `json:"calories"`
	Quantity int32  `json:"quantity"`
	Date     string `json:"date"`
}

func toFoodView(f *store.Food) foodView {
	return foodView{
		ID:       f.ID,
		Name:     f.Name,
		Calories: f.Calories,
		Quantity: f.Quantity,
		Date:     formatTime(f.Date),
	}
}

type nutritionView struct {
	Date              string `json:"date"`
	TotalCalories     int32  `json:"totalCalories"`
	StepsWalked       int32  `json:"stepsWalked"`
	CaloriesBurned    int32  `json:"caloriesBurned"`
	RemainingCalories int32  `json:"remainingCalories"`
	StepsNeeded       int32  `json:"stepsNeeded"`
}

func toNutritionView(n *store.DailyNutrition) nutritionView {
	return nutritionView{
		Date:              formatTime(n.Date),
		TotalCalories:     n.TotalCalories,
		StepsWalked:       n.StepsWalked,
		CaloriesBurned:    n.CaloriesBurned,
		RemainingCalories: n.RemainingCalories,
		StepsNeeded:       n.StepsNeeded,
	}
}

// dayBounds returns local midnight of t and of the following day.
func dayBounds(t time.Time) (int64, int64) {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return start.Unix(), start.AddDate(0, 0, 1).Unix()
}

// AddFood logs a food item for today and refreshes the daily rollup.
func (s *APIV1Service) AddFood(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	var req foodRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apierr.Validation("invalid request body"))
	}
	if req.Name == "" || req.Calories <= 0 {
		return respondError(c, apierr.Validation("Name and calories are required"))
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	now := time.Now()
	food, err := s.Store.CreateFood(ctx, &store.Food{
		CreatorID: userID,
		Name:      req.Name,
		Calories:  req.Calories,
		Quantity:  req.Quantity,
		Date:      now.Unix(),
		CreatedTs: now.Unix(),
		UpdatedTs: now.Unix(),
	})
	if err != nil {
		return respondError(c, err)
	}

	nutrition, err := s.refreshDailyNutrition(c, userID, now)
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusCreated, echo.Map{
		"food":      toFoodView(food),
		"nutrition": toNutritionView(nutrition),
	})
}

// GetTodayNutrition returns today's rollup, computing a zeroed one when the
// caller has logged nothing yet.
func (s *APIV1Service) GetTodayNutrition(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	dayStart, _ := dayBounds(time.Now())
	rollups, err := s.Store.ListDailyNutrition(ctx, &store.FindDailyNutrition{
		CreatorID: &userID,
		Date:      &dayStart,
	})
	if err != nil {
		return respondError(c, err)
	}
	if len(rollups) > 0 {
		return respondData(c, http.StatusOK, toNutritionView(rollups[0]))
	}

	empty := &store.DailyNutrition{CreatorID: userID, Date: dayStart}
	empty.Recalculate()
	return respondData(c, http.StatusOK, toNutritionView(empty))
}

// GetTodayFoods lists the foods the caller logged today.
func (s *APIV1Service) GetTodayFoods(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	dayStart, dayEnd := dayBounds(time.Now())
	foods, err := s.Store.ListFoods(ctx, &store.FindFood{
		CreatorID:  &userID,
		DateAfter:  &dayStart,
		DateBefore: &dayEnd,
	})
	if err != nil {
		return respondError(c, err)
	}

	views := make([]foodView, len(foods))
	for i, f := range foods {
		views[i] = toFoodView(f)
	}
	return respondList(c, len(views), views)
}

type weeklyNutritionView struct {
	Days             []nutritionView `json:"days"`
	TotalCalories    int32           `json:"totalCalories"`
	TotalSteps       int32           `json:"totalSteps"`
	TotalBurned      int32           `json:"totalBurned"`
	AvgCaloriesPerDay int32          `json:"avgCaloriesPerDay"`
	AvgStepsPerDay    int32          `json:"avgStepsPerDay"`
}

// GetWeeklyNutrition aggregates the last seven days of rollups. Averages
// divide by seven regardless of how many days have data.
func (s *APIV1Service) GetWeeklyNutrition(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	dayStart, _ := dayBounds(time.Now())
	weekStart := dayStart - 6*86400
	rollups, err := s.Store.ListDailyNutrition(ctx, &store.FindDailyNutrition{
		CreatorID: &userID,
		DateAfter: &weekStart,
	})
	if err != nil {
		return respondError(c, err)
	}

	view := weeklyNutritionView{Days: make([]nutritionView, len(rollups))}
	for i, n := range rollups {
		view.Days[i] = toNutritionView(n)
		view.TotalCalories += n.TotalCalories
		view.TotalSteps += n.StepsWalked
		view.TotalBurned += n.CaloriesBurned
	}
	view.AvgCaloriesPerDay = view.TotalCalories / 7
	view.AvgStepsPerDay = view.TotalSteps / 7

	return respondData(c, http.StatusOK, view)
}

type stepsRequest struct {
	Steps         int32 `json:"steps"`
	AddToExisting bool  `json:"addToExisting"`
}

// UpdateSteps sets or increments today's step count and refreshes the
// derived calorie fields.
func (s *APIV1Service) UpdateSteps(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	var req stepsRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apierr.Validation("invalid request body"))
	}
	if req.Steps < 0 {
		return respondError(c, apierr.Validation("Steps must not be negative"))
	}

	now := time.Now()
	dayStart, _ := dayBounds(now)

	steps := req.Steps
	if req.AddToExisting {
		rollups, err := s.Store.ListDailyNutrition(ctx, &store.FindDailyNutrition{
			CreatorID: &userID,
			Date:      &dayStart,
		})
		if err != nil {
			return respondError(c, err)
		}
		if len(rollups) > 0 {
			steps += rollups[0].StepsWalked
		}
	}

	nutrition, err := s.upsertDailyNutrition(c, userID, now, steps)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, toNutritionView(nutrition))
}

// DeleteFood removes a logged food owned by the caller and refreshes the
// day's rollup.
func (s *APIV1Service) DeleteFood(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return respondError(c, apierr.NotFound("Food not found"))
	}
	foodID := int32(id)
	foods, err := s.Store.ListFoods(ctx, &store.FindFood{ID: &foodID})
	if err != nil {
		return respondError(c, err)
	}
	if len(foods) == 0 {
		return respondError(c, apierr.NotFound("Food not found"))
	}
	food := foods[0]
	if food.CreatorID != userID {
		return respondError(c, apierr.Forbidden("Not authorized to delete this food"))
	}

	if err := s.Store.DeleteFood(ctx, &store.DeleteFood{ID: food.ID}); err != nil {
		return respondError(c, err)
	}

	nutrition, err := s.refreshDailyNutrition(c, userID, time.Unix(food.Date, 0))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, echo.Map{
		"message":   "Food deleted successfully",
		"nutrition": toNutritionView(nutrition),
	})
}

// refreshDailyNutrition recomputes the day's calorie total from the logged
// foods, keeping the recorded step count.
func (s *APIV1Service) refreshDailyNutrition(c echo.Context, userID int32, day time.Time) (*store.DailyNutrition, error) {
	ctx := c.Request().Context()
	dayStart, _ := dayBounds(day)

	steps := int32(0)
	rollups, err := s.Store.ListDailyNutrition(ctx, &store.FindDailyNutrition{
		CreatorID: &userID,
		Date:      &dayStart,
	})
	if err != nil {
		return nil, err
	}
	if len(rollups) > 0 {
		steps = rollups[0].StepsWalked
	}

	return s.upsertDailyNutrition(c, userID, day, steps)
}

func (s *APIV1Service) upsertDailyNutrition(c echo.Context, userID int32, day time.Time, steps int32) (*store.DailyNutrition, error) {
	ctx := c.Request().Context()
	dayStart, dayEnd := dayBounds(day)

	foods, err := s.Store.ListFoods(ctx, &store.FindFood{
		CreatorID:  &userID,
		DateAfter:  &dayStart,
		DateBefore: &dayEnd,
	})
	if err != nil {
		return nil, err
	}

	rollup := &store.DailyNutrition{
		CreatorID:   userID,
		Date:        dayStart,
		StepsWalked: steps,
	}
	for _, f := range foods {
		rollup.TotalCalories += f.Calories * f.Quantity
	}
	rollup.Recalculate()

	return s.Store.UpsertDailyNutrition(ctx, &store.UpsertDailyNutrition{
		CreatorID:         rollup.CreatorID,
		Date:              rollup.Date,
		TotalCalories:     rollup.TotalCalories,
		StepsWalked:       rollup.StepsWalked,
		CaloriesBurned:    rollup.CaloriesBurned,
		RemainingCalories: rollup.RemainingCalories,
		StepsNeeded:       rollup.StepsNeeded,
		UpdatedTs:         time.Now().Unix(),
	})
}
