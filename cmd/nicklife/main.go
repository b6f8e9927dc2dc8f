package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"nicklife"
	"nicklife/alexa"
	"nicklife/fitbit"
	"nicklife/params"
	"nicklife/summary"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joeshaw/envdecode"
)

func main() {
	fn := func(ctx context.Context, env alexa.RequestEnvelope) (alexa.ResponseEnvelope, error) {
		var fitbitCfg nicklife.FitbitConfig
		if err := envdecode.Decode(&fitbitCfg); err != nil {
			log.Fatalf("Failed to decode: %s", err)
		}
		var summaryCfg nicklife.SummaryConfig
		if err := envdecode.Decode(&summaryCfg); err != nil {
			log.Fatalf("Failed to decode: %s", err)
		}

		if nicklife.DumpEnabled() {
			nicklife.Dump(env)
		}

		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return alexa.ResponseEnvelope{}, fmt.Errorf("failed to load AWS config: %w", err)
		}
		store := params.NewSSMStore(ssm.NewFromConfig(awsCfg))

		loc, err := time.LoadLocation(fitbitCfg.LogTimezone)
		if err != nil {
			return alexa.ResponseEnvelope{}, fmt.Errorf("failed to load log timezone %q: %w", fitbitCfg.LogTimezone, err)
		}

		httpClient := &http.Client{Timeout: fitbitCfg.HTTPTimeout}
		tokens := fitbit.NewTokenManager(store, httpClient, fitbitCfg)
		client := fitbit.NewClient(httpClient, fitbitCfg.APIBaseURL, loc)

		apiKey, err := store.Get(ctx, summaryCfg.APIKeyParam)
		if err != nil {
			return alexa.ResponseEnvelope{}, fmt.Errorf("failed to read completion API key: %w", err)
		}
		llm := summary.NewClient(apiKey, summaryCfg)

		return summary.NewSkill(tokens, client, llm, summaryCfg).HandleRequest(ctx, env)
	}

	lambda.Start(fn)
}
