package main

import (
	"context"
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/light-bringer/finrecon-service/internal/app/sales/usecases/purge_sales"
	"github.com/light-bringer/finrecon-service/internal/pkg/logging"
	"github.com/light-bringer/finrecon-service/internal/services"
)

var year = flag.Int64("year", 0, "Sales year to purge (required)")

// purge_sales bulk-deletes one year of sales records. This is the only
// supported way to remove rows from the append-only sales store.
func main() {
	flag.Parse()

	logger := logging.FromEnv()
	defer logger.Sync()

	if *year == 0 {
		logger.Fatal("missing required -year flag")
	}

	spannerDB := os.Getenv("SPANNER_DATABASE")
	if spannerDB == "" {
		spannerDB = "projects/test-project/instances/dev-instance/databases/finrecon-db"
	}

	ctx := context.Background()
	serviceOpts, err := services.NewServiceOptions(ctx, spannerDB, logger)
	if err != nil {
		logger.Fatal("failed to initialize service", zap.Error(err))
	}
	defer serviceOpts.Close()

	result, err := serviceOpts.PurgeSales.Execute(ctx, &purge_sales.Request{Year: *year})
	if err != nil {
		logger.Fatal("purge failed", zap.Int64("year", *year), zap.Error(err))
	}

	logger.Info("purge completed",
		zap.Int64("year", result.Year),
		zap.Int64("rows_deleted", result.RowsDeleted))
}
