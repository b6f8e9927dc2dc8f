package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"nicklife"
	"nicklife/alexa"
	"nicklife/dialogue"
	"nicklife/fitbit"
	"nicklife/params"

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

		if nicklife.DumpEnabled() {
			nicklife.Dump(env)
		}

		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return alexa.ResponseEnvelope{}, fmt.Errorf("failed to load AWS config: %w", err)
		}
		store := params.NewSSMStore(ssm.NewFromConfig(awsCfg))
		slog.Info("SETUP: SSM parameter store initialized")

		loc, err := time.LoadLocation(fitbitCfg.LogTimezone)
		if err != nil {
			return alexa.ResponseEnvelope{}, fmt.Errorf("failed to load log timezone %q: %w", fitbitCfg.LogTimezone, err)
		}

		httpClient := &http.Client{Timeout: fitbitCfg.HTTPTimeout}
		tokens := fitbit.NewTokenManager(store, httpClient, fitbitCfg)
		client := fitbit.NewClient(httpClient, fitbitCfg.APIBaseURL, loc)

		tracerProvider, meterProvider, otelShutdown, err := nicklife.InitOtel(ctx)
		if err != nil {
			slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
			return alexa.ResponseEnvelope{}, err
		}
		_ = meterProvider // the machine reaches it through the global meter
		defer func() {
			if err := otelShutdown(ctx); err != nil {
				slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
			}
		}()

		machine := dialogue.NewMachine(tokens, client, client, nicklife.NewStdoutTurnLogger(), tracerProvider)

		return dialogue.NewSkill(machine).HandleRequest(ctx, env)
	}

	lambda.Start(fn)
}
