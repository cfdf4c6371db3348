package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/klwxsrx/go-web-auth/pkg/log"
	"github.com/klwxsrx/go-web-auth/pkg/worker"
)

type Job func(context.Context) error

func MustRun(ctx context.Context, logger log.Logger, jobs ...Job) {
	if err := Run(ctx, logger, jobs...); err != nil {
		panic(fmt.Errorf("some of the jobs completed with error: %w", err))
	}
}

// Run stops all jobs as soon as any of them completes.
func Run(ctx context.Context, logger log.Logger, jobs ...Job) error {
	errCompleted := errors.New("job completed")
	loggingAdapter := func(job Job) worker.ErrorJob {
		return func(ctx context.Context) error {
			err := job(ctx)
			if err == nil || errors.Is(err, ctx.Err()) {
				return errCompleted
			}

			logger.WithError(err).Error(ctx, "running job completed with error")
			return err
		}
	}

	_, group := worker.NewFailFastGroup(ctx)
	for _, job := range jobs {
		group.Do(loggingAdapter(job))
	}

	err := group.Wait()
	if !errors.Is(err, errCompleted) {
		return err
	}

	return nil
}
