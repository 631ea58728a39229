package trigger

import (
	"bytes"
	"encoding/json"

	"github.com/campusconnect/campusconnect-api/pkg/httpclient"
	"github.com/campusconnect/campusconnect-api/pkg/logger"
	"go.uber.org/zap"
)

// CallAsyncWithPayload posts a JSON payload to a webhook URL asynchronously.
// Used to notify external automations (moderation alerts, announcement
// fan-out) after store operations. Failures are logged but never block or
// fail the originating request.
func CallAsyncWithPayload(triggerURL string, payload map[string]interface{}, httpClient httpclient.Client) {
	if triggerURL == "" {
		// No trigger URL configured, skip silently
		return
	}

	go func() {
		body, err := json.Marshal(payload)
		if err != nil {
			logger.Error("Failed to marshal trigger payload",
				zap.Error(err),
				zap.String("url", triggerURL))
			return
		}

		resp, err := httpClient.Post(triggerURL, "application/json", bytes.NewReader(body))
		if err != nil {
			logger.Error("Failed to call trigger URL",
				zap.Error(err),
				zap.String("url", triggerURL))
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			logger.Info("Trigger URL called successfully",
				zap.String("url", triggerURL),
				zap.Int("status_code", resp.StatusCode))
		} else {
			logger.Warn("Trigger URL returned non-success status",
				zap.String("url", triggerURL),
				zap.Int("status_code", resp.StatusCode))
		}
	}()
}
