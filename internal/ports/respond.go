package ports

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Amund211/bosslevels/internal/logging"
	"github.com/Amund211/bosslevels/internal/reporting"
)

func writeJSONResponse(ctx context.Context, w http.ResponseWriter, response any) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.FromContext(ctx).ErrorContext(ctx, "Failed to marshal response", "error", err)
		reporting.Report(ctx, fmt.Errorf("failed to marshal response: %w", err))

		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(data); err != nil {
		logging.FromContext(ctx).ErrorContext(ctx, "Failed to write response", "error", err)
		reporting.Report(ctx, fmt.Errorf("failed to write response: %w", err))
		return
	}
}
