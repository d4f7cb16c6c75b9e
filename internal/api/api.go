package api

import (
	"encoding/json"
	"exercise-tracker-service/internal/entity"
	"exercise-tracker-service/internal/service"
	"github.com/labstack/echo/v4"
	"math"
	"strconv"
	"strings"
)

type ExerciseHandler struct {
	exerciseService *service.ExerciseService
}

// NewExerciseHandler creates a new instance of ExerciseHandler
func NewExerciseHandler(exerciseService *service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

type newUserRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
}

type addExerciseRequest struct {
	UserID      string    `json:"userId" form:"userId" validate:"required"`
	Description string    `json:"description" form:"description" validate:"required"`
	Duration    rawString `json:"duration" form:"duration" validate:"required"`
	Date        rawString `json:"date" form:"date"`
}

type logRequest struct {
	UserID string `query:"userId" validate:"required"`
	From   string `query:"from"`
	To     string `query:"to"`
	Limit  string `query:"limit"`
}

type exerciseResponse struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

type logEntryResponse struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

type logResponse struct {
	ID       string             `json:"_id"`
	Username string             `json:"username"`
	Count    int                `json:"count"`
	Log      []logEntryResponse `json:"log"`
}

// rawString accepts a JSON string or any bare JSON value, keeping its text. Lets "30" and 30 both reach the integer check.
// Integral numbers such as 30.0 are normalized to "30".
type rawString string

func (r *rawString) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*r = ""
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*r = rawString(str)
	default:
		*r = rawString(s)
		if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) && math.Abs(f) <= math.MaxInt32 {
			*r = rawString(strconv.FormatInt(int64(f), 10))
		}
	}
	return nil
}

// CreateUser creates a new user --> POST /api/exercise/new-user
func (h *ExerciseHandler) CreateUser(c echo.Context) error {
	req := newUserRequest{}
	if err := c.Bind(&req); err != nil {
		return invalidPayload(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.exerciseService.CreateUser(c.Request().Context(), req.Username)
	if err != nil {
		return err
	}

	return c.JSON(200, user)
}

// GetUsers lists all users --> GET /api/exercise/users
func (h *ExerciseHandler) GetUsers(c echo.Context) error {
	users, err := h.exerciseService.GetUsers(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(200, users)
}

// AddExercise adds a log entry for a user --> POST /api/exercise/add
func (h *ExerciseHandler) AddExercise(c echo.Context) error {
	req := addExerciseRequest{}
	if err := c.Bind(&req); err != nil {
		return invalidPayload(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, exercise, err := h.exerciseService.AddExercise(c.Request().Context(), service.AddExerciseInput{
		UserID:      req.UserID,
		Description: req.Description,
		Duration:    string(req.Duration),
		Date:        string(req.Date),
	})
	if err != nil {
		return err
	}

	return c.JSON(200, exerciseResponse{
		ID:          user.ID,
		Username:    user.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        entity.FormatDate(exercise.Date),
	})
}

// GetLog returns a user's exercise log --> GET /api/exercise/log?userId=&from=&to=&limit=
func (h *ExerciseHandler) GetLog(c echo.Context) error {
	req := logRequest{}
	if err := c.Bind(&req); err != nil {
		return invalidPayload(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, exercises, err := h.exerciseService.GetLog(c.Request().Context(), service.LogQuery{
		UserID: req.UserID,
		From:   req.From,
		To:     req.To,
		Limit:  req.Limit,
	})
	if err != nil {
		return err
	}

	entries := make([]logEntryResponse, 0, len(exercises))
	for _, e := range exercises {
		entries = append(entries, logEntryResponse{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        entity.FormatDate(e.Date),
		})
	}

	return c.JSON(200, logResponse{
		ID:       user.ID,
		Username: user.Username,
		Count:    len(entries),
		Log:      entries,
	})
}
