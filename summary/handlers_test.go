package summary

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"nicklife/alexa"
	"nicklife/fitbit"

	should "github.com/stretchr/testify/assert"
	must "github.com/stretchr/testify/require"
)

type fakeTokens struct {
	token string
	err   error
}

func (f *fakeTokens) AccessToken(ctx context.Context) (string, error) {
	return f.token, f.err
}

type fakeFitbit struct {
	profile     fitbit.Profile
	weight      fitbit.WeightLog
	weightErr   error
	foods       fitbit.FoodLog
	foodsErr    error
	activities  fitbit.ActivitySummary
	sleep       fitbit.SleepLog
	profileErr  error
	activityErr error
	sleepErr    error
}

func (f *fakeFitbit) FetchProfile(ctx context.Context, accessToken string) (fitbit.Profile, error) {
	return f.profile, f.profileErr
}

func (f *fakeFitbit) FetchWeightToday(ctx context.Context, accessToken string) (fitbit.WeightLog, error) {
	return f.weight, f.weightErr
}

func (f *fakeFitbit) FetchFoodsToday(ctx context.Context, accessToken string) (fitbit.FoodLog, error) {
	return f.foods, f.foodsErr
}

func (f *fakeFitbit) FetchActivitiesToday(ctx context.Context, accessToken string) (fitbit.ActivitySummary, error) {
	return f.activities, f.activityErr
}

func (f *fakeFitbit) FetchSleepToday(ctx context.Context, accessToken string) (fitbit.SleepLog, error) {
	return f.sleep, f.sleepErr
}

type fakeCompleter struct {
	text      string
	err       error
	gotPrompt string
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.gotPrompt = prompt
	return f.text, f.err
}

func testFitbitData() *fakeFitbit {
	fb := &fakeFitbit{}
	fb.profile.User.Age = 33
	fb.weight.Weight = []fitbit.WeightEntry{{Weight: 205.4}}
	fb.foods.Foods = []fitbit.FoodLogEntry{
		{LoggedFood: fitbit.LoggedFood{Name: "Banana", Calories: 105}},
	}
	return fb
}

func launchEnvelope() alexa.RequestEnvelope {
	return alexa.RequestEnvelope{Request: alexa.Request{Type: alexa.RequestTypeLaunch}}
}

func summaryEnvelope(attrs map[string]any) alexa.RequestEnvelope {
	return alexa.RequestEnvelope{
		Session: &alexa.Session{Attributes: attrs},
		Request: alexa.Request{
			Type:   alexa.RequestTypeIntent,
			Intent: &alexa.Intent{Name: alexa.IntentDailySummary},
		},
	}
}

func TestLaunchAssemblesPrompt(t *testing.T) {
	skill := NewSkill(&fakeTokens{token: "tok"}, testFitbitData(), &fakeCompleter{}, testSummaryConfig())

	resp, err := skill.HandleRequest(context.Background(), launchEnvelope())
	must.NoError(t, err)

	should.Equal(t, speechWelcome, resp.Response.OutputSpeech.Text)
	should.False(t, resp.Response.ShouldEndSession)

	prompt, ok := resp.SessionAttributes[attributePrompt].(string)
	must.True(t, ok, "prompt parked in session attributes")
	should.Contains(t, prompt, "age 33")
	should.Contains(t, prompt, "weight 205.4")
	should.Contains(t, prompt, "Banana (105 calories)")
}

func TestLaunchWeightFallback(t *testing.T) {
	fb := testFitbitData()
	fb.weight.Weight = nil

	skill := NewSkill(&fakeTokens{token: "tok"}, fb, &fakeCompleter{}, testSummaryConfig())
	resp, err := skill.HandleRequest(context.Background(), launchEnvelope())
	must.NoError(t, err)

	prompt := resp.SessionAttributes[attributePrompt].(string)
	should.Contains(t, prompt, "weight 210")
}

func TestLaunchAuthFailure(t *testing.T) {
	skill := NewSkill(&fakeTokens{err: errors.New("refresh rejected")}, testFitbitData(), &fakeCompleter{}, testSummaryConfig())

	resp, err := skill.HandleRequest(context.Background(), launchEnvelope())
	must.NoError(t, err)
	should.Equal(t, speechAuthDown, resp.Response.OutputSpeech.Text)
	should.True(t, resp.Response.ShouldEndSession)
}

func TestLaunchFitbitFailure(t *testing.T) {
	fb := testFitbitData()
	fb.foodsErr = errors.New("status 500")

	skill := NewSkill(&fakeTokens{token: "tok"}, fb, &fakeCompleter{}, testSummaryConfig())
	resp, err := skill.HandleRequest(context.Background(), launchEnvelope())
	must.NoError(t, err)
	should.Equal(t, speechFitbitDown, resp.Response.OutputSpeech.Text)
}

func TestDailySummarySpeaksCompletion(t *testing.T) {
	llm := &fakeCompleter{text: "Solid day. Add some protein at lunch."}
	skill := NewSkill(&fakeTokens{token: "tok"}, testFitbitData(), llm, testSummaryConfig())

	resp, err := skill.HandleRequest(context.Background(), summaryEnvelope(map[string]any{attributePrompt: "coach me"}))
	must.NoError(t, err)
	should.Equal(t, "coach me", llm.gotPrompt)
	should.Equal(t, "Solid day. Add some protein at lunch.", resp.Response.OutputSpeech.Text)
	should.True(t, resp.Response.ShouldEndSession)
}

func TestDailySummaryWithoutPrompt(t *testing.T) {
	skill := NewSkill(&fakeTokens{token: "tok"}, testFitbitData(), &fakeCompleter{}, testSummaryConfig())

	resp, err := skill.HandleRequest(context.Background(), summaryEnvelope(nil))
	must.NoError(t, err)
	should.Equal(t, speechNoPrompt, resp.Response.OutputSpeech.Text)
}

func TestDailySummaryCompletionFailure(t *testing.T) {
	llm := &fakeCompleter{err: errors.New("rate limited")}
	skill := NewSkill(&fakeTokens{token: "tok"}, testFitbitData(), llm, testSummaryConfig())

	resp, err := skill.HandleRequest(context.Background(), summaryEnvelope(map[string]any{attributePrompt: "coach me"}))
	must.NoError(t, err)
	should.Equal(t, speechSummaryDown, resp.Response.OutputSpeech.Text)
}

type fakeChatAPI struct {
	resp   openai.ChatCompletionResponse
	err    error
	gotReq openai.ChatCompletionRequest
}

func (f *fakeChatAPI) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.gotReq = request
	return f.resp, f.err
}

func TestClientComplete(t *testing.T) {
	t.Run("sends one user message", func(t *testing.T) {
		api := &fakeChatAPI{
			resp: openai.ChatCompletionResponse{
				Choices: []openai.ChatCompletionChoice{
					{Message: openai.ChatCompletionMessage{Content: "feedback"}},
				},
			},
		}
		c := &Client{api: api, model: "gpt-3.5-turbo-1106", temperature: 0.7}

		text, err := c.Complete(context.Background(), "coach me")
		must.NoError(t, err)
		should.Equal(t, "feedback", text)

		should.Equal(t, "gpt-3.5-turbo-1106", api.gotReq.Model)
		should.Equal(t, float32(0.7), api.gotReq.Temperature)
		must.Len(t, api.gotReq.Messages, 1)
		should.Equal(t, openai.ChatMessageRoleUser, api.gotReq.Messages[0].Role)
		should.Equal(t, "coach me", api.gotReq.Messages[0].Content)
	})

	t.Run("empty choices is an error", func(t *testing.T) {
		c := &Client{api: &fakeChatAPI{}, model: "m"}
		_, err := c.Complete(context.Background(), "coach me")
		should.Error(t, err)
	})

	t.Run("api error is wrapped", func(t *testing.T) {
		c := &Client{api: &fakeChatAPI{err: errors.New("boom")}, model: "m"}
		_, err := c.Complete(context.Background(), "coach me")
		must.Error(t, err)
		should.Contains(t, err.Error(), "boom")
	})
}
