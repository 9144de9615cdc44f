package service

import (
	"cemse_backend/pkg/logger"
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const reconcileBatchSize = 200

// ProgressReconciler 定期从课时进度重算所有未完成的选课记录
type ProgressReconciler struct {
	Enrollments *EnrollmentService
	cron        *cron.Cron
}

func NewProgressReconciler(enrollments *EnrollmentService) *ProgressReconciler {
	return &ProgressReconciler{Enrollments: enrollments}
}

// ReconcileAll 单条失败只记录日志，返回成功重算的条数
func (r *ProgressReconciler) ReconcileAll(ctx context.Context) (int, error) {
	var afterID uint
	count := 0
	for {
		ids, err := r.Enrollments.Enrollments.ListIncompleteIDs(ctx, afterID, reconcileBatchSize)
		if err != nil {
			return count, fmt.Errorf("list enrollments: %w", err)
		}
		if len(ids) == 0 {
			return count, nil
		}

		for _, id := range ids {
			if ctx.Err() != nil {
				return count, ctx.Err()
			}
			if _, err := r.Enrollments.RecalculateProgress(ctx, id); err != nil {
				logger.Log.Error("Progress reconcile failed", zap.Uint("enrollment_id", id), zap.Error(err))
				continue
			}
			count++
		}
		afterID = ids[len(ids)-1]
	}
}

// Start schedule 为空时不启动
func (r *ProgressReconciler) Start(schedule string) error {
	if schedule == "" {
		return nil
	}

	r.cron = cron.New()
	_, err := r.cron.AddFunc(schedule, func() {
		n, err := r.ReconcileAll(context.Background())
		if err != nil {
			logger.Log.Error("Progress reconcile run failed", zap.Error(err))
			return
		}
		logger.Log.Info("Progress reconcile finished", zap.Int("enrollments", n))
	})
	if err != nil {
		return fmt.Errorf("invalid reconcile cron %q: %w", schedule, err)
	}

	r.cron.Start()
	logger.Log.Info("Progress reconciler started", zap.String("schedule", schedule))
	return nil
}

// Stop 等待正在执行的任务结束
func (r *ProgressReconciler) Stop() {
	if r.cron == nil {
		return
	}
	<-r.cron.Stop().Done()
}
