package httpapi

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/powercast-data/internal/grid"
	"github.com/i474232898/powercast-data/internal/grid/synthetic"
	"github.com/i474232898/powercast-data/internal/store"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *grid.Service, generator *synthetic.Generator) {
	v1 := app.Group("/api/v1")

	for _, cat := range []grid.Category{
		grid.CategoryGridStatus,
		grid.CategoryAssets,
		grid.CategoryScenarios,
		grid.CategoryPatterns,
	} {
		category := cat
		v1.Get(strings.TrimPrefix(category.Path(), "/api/v1"), func(c *fiber.Ctx) error {
			return c.JSON(service.FetchData(c.UserContext(), category, grid.Params{}))
		})
	}

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		q, err := parseForecastQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		env := service.FetchData(c.UserContext(), grid.CategoryForecast, q.params())
		return c.JSON(env)
	})

	v1.Get("/forecast/assets", func(c *fiber.Ctx) error {
		q, err := parseForecastQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		types, err := parseAssetTypes(c.Query("types"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		p := q.params()
		return c.JSON(fiber.Map{
			"horizon_hours": q.HorizonHours,
			"step":          q.Step,
			"forecasts":     generator.MultiAssetForecast(p.Horizon, p.Step, types...),
		})
	})

	v1.Get("/sparkline", func(c *fiber.Ctx) error {
		q := sparklineQuery{Points: 24}
		if err := c.QueryParser(&q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(fiber.Map{
			"points": generator.Sparkline(q.Points),
		})
	})

	v1.Get("/live/grid", func(c *fiber.Ctx) error {
		snapshot, err := service.GetLatest()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no live grid data recorded yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch live grid data")
		}

		return c.JSON(snapshot)
	})

	v1.Get("/live/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snapshots, err := service.GetRange(req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no live grid history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch live grid history")
		}

		return c.JSON(fiber.Map{
			"from":      req.From,
			"to":        req.To,
			"snapshots": snapshots,
		})
	})
}

// forecastQuery holds query parameters for the forecast endpoints.
type forecastQuery struct {
	Target       string `query:"target" validate:"oneof=load solar wind net_load"`
	HorizonHours int    `query:"horizon_hours" validate:"min=1,max=48"`
	Step         string `query:"step" validate:"oneof=30m 1h"`
}

func parseForecastQuery(c *fiber.Ctx) (forecastQuery, error) {
	q := forecastQuery{
		Target:       string(grid.TargetLoad),
		HorizonHours: grid.DefaultHorizon,
		Step:         "1h",
	}

	if err := c.QueryParser(&q); err != nil {
		return q, err
	}
	q.Target = strings.ToLower(q.Target)

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

func (q forecastQuery) params() grid.Params {
	step := time.Hour
	if q.Step == "30m" {
		step = 30 * time.Minute
	}
	return grid.Params{
		Horizon: q.HorizonHours * int(time.Hour/step),
		Step:    step,
		Target:  grid.ForecastTarget(q.Target),
	}
}

// parseAssetTypes splits a comma separated list. Empty means every type.
func parseAssetTypes(raw string) ([]grid.AssetType, error) {
	if strings.TrimSpace(raw) == "" {
		return grid.AllAssetTypes, nil
	}

	var types []grid.AssetType
	for _, part := range strings.Split(raw, ",") {
		t := strings.ToLower(strings.TrimSpace(part))
		if err := validate.Var(t, "oneof=hydro solar wind gas nuclear thermal"); err != nil {
			return nil, errors.New("unknown asset type " + strconv.Quote(t))
		}
		types = append(types, grid.AssetType(t))
	}
	return types, nil
}

type sparklineQuery struct {
	Points int `query:"points" validate:"min=1,max=500"`
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
