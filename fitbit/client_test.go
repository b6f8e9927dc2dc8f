package fitbit

import (
	"context"
	"net/http"
	"testing"
	"time"

	should "github.com/stretchr/testify/assert"
	must "github.com/stretchr/testify/require"
)

func testClient(doer *mockDoer) *Client {
	loc, _ := time.LoadLocation("America/New_York")
	c := NewClient(doer, "https://api.fitbit.test", loc)
	// 2024-03-05 12:30 Eastern: lunch hours.
	c.now = func() time.Time {
		return time.Date(2024, 3, 5, 17, 30, 0, 0, time.UTC)
	}
	return c
}

func TestSearchFoods(t *testing.T) {
	t.Run("preserves catalog order", func(t *testing.T) {
		doer := &mockDoer{
			doFunc: func(req *http.Request) (*http.Response, error) {
				should.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
				should.Equal(t, "raw banana", req.URL.Query().Get("query"))
				return httpResponse(http.StatusOK, `{"foods":[
					{"foodId":10,"name":"Banana","calories":105,"defaultServingSize":1,"defaultUnit":{"id":304,"name":"medium","plural":"mediums"}},
					{"foodId":11,"name":"Banana Bread","calories":196,"defaultServingSize":1,"defaultUnit":{"id":226,"name":"slice","plural":"slices"}}
				]}`), nil
			},
		}

		foods, err := testClient(doer).SearchFoods(context.Background(), "tok", "raw banana")
		must.NoError(t, err)
		must.Len(t, foods, 2)
		should.Equal(t, "Banana", foods[0].Name)
		should.Equal(t, int64(10), foods[0].FoodID)
		should.Equal(t, "mediums", foods[0].DefaultUnit.Plural)
		should.Equal(t, "Banana Bread", foods[1].Name)
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		doer := &mockDoer{
			doFunc: func(req *http.Request) (*http.Response, error) {
				return httpResponse(http.StatusOK, `{"foods":[]}`), nil
			},
		}

		foods, err := testClient(doer).SearchFoods(context.Background(), "tok", "xyzzy")
		must.NoError(t, err)
		should.Empty(t, foods)
	})

	t.Run("server error is catalog unavailable", func(t *testing.T) {
		doer := &mockDoer{
			doFunc: func(req *http.Request) (*http.Response, error) {
				return httpResponse(http.StatusInternalServerError, `oops`), nil
			},
		}

		_, err := testClient(doer).SearchFoods(context.Background(), "tok", "banana")
		must.Error(t, err)
		should.ErrorIs(t, err, ErrCatalogUnavailable)
	})
}

func TestLogFood(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		var logged *http.Request
		doer := &mockDoer{
			doFunc: func(req *http.Request) (*http.Response, error) {
				logged = req
				return httpResponse(http.StatusCreated, `{"foodLog":{"logId":99}}`), nil
			},
		}

		body, err := testClient(doer).LogFood(context.Background(), "tok", 10, 304, 3)
		must.NoError(t, err)
		should.Contains(t, body, "logId")

		must.NotNil(t, logged)
		should.Equal(t, http.MethodPost, logged.Method)
		q := logged.URL.Query()
		should.Equal(t, "10", q.Get("foodId"))
		should.Equal(t, "304", q.Get("unitId"))
		should.Equal(t, "3", q.Get("amount"))
		should.Equal(t, "2024-03-05", q.Get("date"))
		// 12:30 Eastern falls in the lunch window.
		should.Equal(t, "3", q.Get("mealTypeId"))
	})

	t.Run("non-201 is a structured failure", func(t *testing.T) {
		doer := &mockDoer{
			doFunc: func(req *http.Request) (*http.Response, error) {
				return httpResponse(http.StatusBadRequest, `{"errors":[{"message":"invalid unit"}]}`), nil
			},
		}

		_, err := testClient(doer).LogFood(context.Background(), "tok", 10, 304, 1)
		must.Error(t, err)

		var writeErr *LogWriteError
		must.ErrorAs(t, err, &writeErr)
		should.Equal(t, http.StatusBadRequest, writeErr.StatusCode)
		should.Contains(t, writeErr.Body, "invalid unit")
	})

	t.Run("fractional amount formatting", func(t *testing.T) {
		var q string
		doer := &mockDoer{
			doFunc: func(req *http.Request) (*http.Response, error) {
				q = req.URL.Query().Get("amount")
				return httpResponse(http.StatusCreated, `{}`), nil
			},
		}

		_, err := testClient(doer).LogFood(context.Background(), "tok", 10, 304, 0.5)
		must.NoError(t, err)
		should.Equal(t, "0.5", q)
	})
}

func TestFetchDailyData(t *testing.T) {
	doer := &mockDoer{
		doFunc: func(req *http.Request) (*http.Response, error) {
			switch req.URL.Path {
			case "/1/user/-/profile.json":
				return httpResponse(http.StatusOK, `{"user":{"age":33,"fullName":"Nick"}}`), nil
			case "/1/user/-/body/log/weight/date/2024-03-05.json":
				return httpResponse(http.StatusOK, `{"weight":[{"weight":205.4}]}`), nil
			case "/1/user/-/foods/log/date/2024-03-05.json":
				return httpResponse(http.StatusOK, `{"foods":[{"loggedFood":{"name":"Banana","calories":105}}]}`), nil
			case "/1/user/-/activities/date/2024-03-05.json":
				return httpResponse(http.StatusOK, `{"summary":{"caloriesOut":2400,"steps":9000}}`), nil
			case "/1/user/-/sleep/date/2024-03-05.json":
				return httpResponse(http.StatusOK, `{"summary":{"totalMinutesAsleep":420}}`), nil
			}
			return httpResponse(http.StatusNotFound, ``), nil
		},
	}

	c := testClient(doer)
	ctx := context.Background()

	profile, err := c.FetchProfile(ctx, "tok")
	must.NoError(t, err)
	should.Equal(t, 33, profile.User.Age)

	weight, err := c.FetchWeightToday(ctx, "tok")
	must.NoError(t, err)
	must.Len(t, weight.Weight, 1)
	should.Equal(t, 205.4, weight.Weight[0].Weight)

	foods, err := c.FetchFoodsToday(ctx, "tok")
	must.NoError(t, err)
	must.Len(t, foods.Foods, 1)
	should.Equal(t, "Banana", foods.Foods[0].LoggedFood.Name)

	activities, err := c.FetchActivitiesToday(ctx, "tok")
	must.NoError(t, err)
	should.Equal(t, 9000, activities.Summary.Steps)

	sleep, err := c.FetchSleepToday(ctx, "tok")
	must.NoError(t, err)
	should.Equal(t, 420, sleep.Summary.TotalMinutesAsleep)
}
