// 手动重算学习进度
//
// 主应用可通过 progress.reconcile_cron 定时执行同样的对账。
// 此脚本用于手动触发，例如批量导入课时进度或调整课程结构之后。
//
// 用法: go run scripts/recompute_progress.go [-enrollment 42]

package main

import (
	"cemse_backend/internal/config"
	"cemse_backend/internal/repository"
	"cemse_backend/internal/service"
	"cemse_backend/pkg/database"
	"cemse_backend/pkg/logger"
	"context"
	"flag"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type summary struct {
	Enrollment  uint          `yaml:"enrollment,omitempty"`
	Progress    int           `yaml:"progress,omitempty"`
	Status      string        `yaml:"status,omitempty"`
	Reconciled  int           `yaml:"reconciled"`
	Duration    time.Duration `yaml:"duration"`
	CompletedAt time.Time     `yaml:"completed_at"`
}

func main() {
	enrollmentID := flag.Uint("enrollment", 0, "只重算指定选课记录")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode, false)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	enrollments := service.NewEnrollmentService(db,
		repository.NewCourseRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewLessonProgressRepository(db),
	)

	ctx := context.Background()
	start := time.Now()
	var out summary

	if *enrollmentID != 0 {
		e, err := enrollments.RecalculateProgress(ctx, *enrollmentID)
		if err != nil {
			log.Fatalf("重算失败: %v", err)
		}
		out.Enrollment = e.ID
		out.Progress = e.Progress
		out.Status = string(e.Status)
		out.Reconciled = 1
	} else {
		n, err := service.NewProgressReconciler(enrollments).ReconcileAll(ctx)
		if err != nil {
			log.Fatalf("对账失败: %v", err)
		}
		out.Reconciled = n
	}

	out.Duration = time.Since(start)
	out.CompletedAt = time.Now()

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		log.Fatalf("输出结果失败: %v", err)
	}
	enc.Close()
}
