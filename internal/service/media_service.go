package service

import (
	"cemse_backend/internal/model"
	"cemse_backend/internal/repository"
	"cemse_backend/internal/util"
	"cemse_backend/internal/validator"
	"cemse_backend/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	uploadKeyPrefix = "cemse:upload:"
	uploadTTL       = 24 * time.Hour
	thumbnailOffset = "3"
)

// VideoURL 限时播放地址
type VideoURL struct {
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	Duration     float64   `json:"duration"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type MediaService struct {
	Courses     *repository.CourseRepository
	Enrollments *repository.EnrollmentRepository
	Storage     *StorageService
	Redis       *redis.Client
	TempDir     string

	probe     func(path string) (*util.VideoInfo, error)
	thumbnail func(videoPath, thumbnailPath, offset string) error
}

func NewMediaService(courses *repository.CourseRepository, enrollments *repository.EnrollmentRepository, storage *StorageService, rdb *redis.Client, tempDir string) *MediaService {
	return &MediaService{
		Courses:     courses,
		Enrollments: enrollments,
		Storage:     storage,
		Redis:       rdb,
		TempDir:     tempDir,
		probe:       util.GetVideoInfo,
		thumbnail:   util.GenerateThumbnail,
	}
}

// UploadLessonVideo 单文件上传：校验 -> 暂存 -> 探测时长/截图 -> 上传对象存储 -> 更新课时
func (s *MediaService) UploadLessonVideo(ctx context.Context, lessonID uint, file *multipart.FileHeader) (*model.Lesson, error) {
	lesson, err := s.findLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if !util.IsAllowedVideoExt(file.Filename) {
		return nil, util.ErrInvalidVideoExt
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, []string{util.MimeVideo})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidFileContent, err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.TempDir, 0755); err != nil {
		return nil, err
	}
	tmp, err := os.CreateTemp(s.TempDir, "video-*"+strings.ToLower(filepath.Ext(file.Filename)))
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())

	size, err := io.Copy(tmp, src)
	tmp.Close()
	if err != nil {
		return nil, err
	}

	if err := s.attachVideo(ctx, lesson, tmp.Name(), file.Filename, mimeType, size); err != nil {
		return nil, err
	}
	return lesson, nil
}

// UploadLessonVideoChunk 分片上传，分片编号从 0 开始；全部到齐后合并并走单文件流程
func (s *MediaService) UploadLessonVideoChunk(ctx context.Context, lessonID uint, req *validator.ChunkUploadRequest, chunk *multipart.FileHeader) (*model.UploadProgress, *model.Lesson, error) {
	lesson, err := s.findLesson(ctx, lessonID)
	if err != nil {
		return nil, nil, err
	}
	if !util.IsAllowedVideoExt(req.Filename) {
		return nil, nil, util.ErrInvalidVideoExt
	}

	progress, err := s.loadOrCreateProgress(ctx, lessonID, req)
	if err != nil {
		return nil, nil, err
	}

	src, err := chunk.Open()
	if err != nil {
		return nil, nil, err
	}
	defer src.Close()

	// 只有首个分片带文件头
	if req.ChunkNumber == 0 {
		if _, err := util.ValidateMimeType(src, []string{util.MimeVideo}); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", util.ErrInvalidFileContent, err)
		}
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return nil, nil, err
		}
	}

	chunkDir := s.chunkDir(req.Identifier)
	if err := os.MkdirAll(chunkDir, 0755); err != nil {
		return nil, nil, err
	}
	dst, err := os.Create(filepath.Join(chunkDir, "chunk_"+strconv.Itoa(req.ChunkNumber)))
	if err != nil {
		return nil, nil, err
	}
	written, err := io.Copy(dst, src)
	dst.Close()
	if err != nil {
		return nil, nil, err
	}

	key := uploadKeyPrefix + req.Identifier
	// 重传的分片覆盖文件，大小以最新一次为准
	if err := s.Redis.HSet(ctx, key+":chunks", strconv.Itoa(req.ChunkNumber), written).Err(); err != nil {
		return nil, nil, err
	}
	if err := s.Redis.Expire(ctx, key+":chunks", uploadTTL).Err(); err != nil {
		return nil, nil, err
	}

	if err := s.fillChunks(ctx, progress); err != nil {
		return nil, nil, err
	}
	if !progress.IsComplete() {
		return progress, nil, nil
	}

	// 只允许一个请求执行合并
	locked, err := s.Redis.SetNX(ctx, key+":lock", 1, time.Hour).Result()
	if err != nil {
		return nil, nil, err
	}
	if !locked {
		return progress, nil, nil
	}

	mergedPath, err := s.mergeChunks(req.Identifier, req.Filename, progress.TotalChunks)
	if err != nil {
		s.Redis.Del(ctx, key+":lock")
		return nil, nil, err
	}
	defer os.Remove(mergedPath)

	contentType, err := util.DetectFileMime(mergedPath)
	if err != nil {
		s.Redis.Del(ctx, key+":lock")
		return nil, nil, err
	}
	if err := s.attachVideo(ctx, lesson, mergedPath, req.Filename, contentType, progress.FileSize); err != nil {
		s.Redis.Del(ctx, key+":lock")
		return nil, nil, err
	}

	os.RemoveAll(chunkDir)
	s.Redis.Del(ctx, key, key+":chunks", key+":lock")
	return progress, lesson, nil
}

func (s *MediaService) GetUploadProgress(ctx context.Context, identifier string) (*model.UploadProgress, error) {
	val, err := s.Redis.Get(ctx, uploadKeyPrefix+identifier).Result()
	if err == redis.Nil {
		return nil, util.ErrUploadProgressNotFound
	} else if err != nil {
		return nil, err
	}

	var progress model.UploadProgress
	if err := json.Unmarshal([]byte(val), &progress); err != nil {
		return nil, err
	}
	if err := s.fillChunks(ctx, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

// GetLessonVideoURL 学员必须已选该课程，教师和管理员不受限
func (s *MediaService) GetLessonVideoURL(ctx context.Context, user *util.Claims, lessonID uint) (*VideoURL, error) {
	lesson, err := s.findLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if !lesson.HasVideo() {
		return nil, util.ErrVideoNotAvailable
	}

	if !user.IsInstructor() {
		module, err := s.Courses.FindModuleByID(ctx, lesson.ModuleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrLessonNotFound
			}
			return nil, err
		}
		if _, err := s.Enrollments.FindByStudentAndCourse(ctx, user.UserID, module.CourseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrPermissionDenied
			}
			return nil, err
		}
	}

	videoURL, err := s.Storage.SignedURL(ctx, lesson.VideoKey)
	if err != nil {
		return nil, fmt.Errorf("sign video url: %w", err)
	}
	result := &VideoURL{
		URL:       videoURL,
		Duration:  lesson.VideoDuration,
		ExpiresAt: time.Now().Add(s.Storage.URLExpiry),
	}
	if lesson.ThumbnailKey != "" {
		if thumbURL, err := s.Storage.SignedURL(ctx, lesson.ThumbnailKey); err == nil {
			result.ThumbnailURL = thumbURL
		}
	}
	return result, nil
}

func (s *MediaService) findLesson(ctx context.Context, lessonID uint) (*model.Lesson, error) {
	lesson, err := s.Courses.FindLessonByID(ctx, lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, fmt.Errorf("load lesson: %w", err)
	}
	return lesson, nil
}

// attachVideo 探测和截图失败不阻断上传，只记录日志
func (s *MediaService) attachVideo(ctx context.Context, lesson *model.Lesson, localPath, filename, contentType string, size int64) error {
	stamp := time.Now().Format("20060102150405") + "-" + util.GenerateRandomString(4)
	videoKey := fmt.Sprintf("lessons/%d/videos/%s-%s", lesson.ID, stamp, util.SanitizeFilename(filename))

	if err := s.Storage.UploadFile(ctx, videoKey, localPath, contentType); err != nil {
		return err
	}

	lesson.VideoKey = videoKey
	lesson.VideoSize = size
	lesson.VideoFormat = strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	lesson.VideoDuration = 0
	lesson.ThumbnailKey = ""

	if info, err := s.probe(localPath); err != nil {
		logger.Log.Warn("Video probe failed", zap.Uint("lesson_id", lesson.ID), zap.Error(err))
	} else {
		lesson.VideoDuration = info.Duration
		if info.Format != "" && info.Format != "unknown" {
			lesson.VideoFormat = info.Format
		}
	}

	thumbPath := filepath.Join(s.TempDir, "thumb-"+stamp+".jpg")
	defer os.Remove(thumbPath)
	if err := s.thumbnail(localPath, thumbPath, thumbnailOffset); err != nil {
		logger.Log.Warn("Thumbnail generation failed", zap.Uint("lesson_id", lesson.ID), zap.Error(err))
	} else {
		thumbKey := fmt.Sprintf("lessons/%d/thumbnails/%s.jpg", lesson.ID, stamp)
		if err := s.Storage.UploadFile(ctx, thumbKey, thumbPath, "image/jpeg"); err != nil {
			logger.Log.Warn("Thumbnail upload failed", zap.Uint("lesson_id", lesson.ID), zap.Error(err))
		} else {
			lesson.ThumbnailKey = thumbKey
		}
	}

	if err := s.Courses.UpdateLessonVideo(ctx, lesson); err != nil {
		return fmt.Errorf("update lesson video: %w", err)
	}
	logger.Log.Info("Lesson video uploaded",
		zap.Uint("lesson_id", lesson.ID),
		zap.String("video_key", videoKey),
		zap.Float64("duration", lesson.VideoDuration),
	)
	return nil
}

func (s *MediaService) loadOrCreateProgress(ctx context.Context, lessonID uint, req *validator.ChunkUploadRequest) (*model.UploadProgress, error) {
	key := uploadKeyPrefix + req.Identifier
	progress := &model.UploadProgress{
		Identifier:  req.Identifier,
		LessonID:    lessonID,
		Filename:    req.Filename,
		TotalChunks: req.TotalChunks,
		CreatedAt:   time.Now(),
	}
	data, err := json.Marshal(progress)
	if err != nil {
		return nil, err
	}
	if _, err := s.Redis.SetNX(ctx, key, data, uploadTTL).Result(); err != nil {
		return nil, err
	}

	val, err := s.Redis.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	var stored model.UploadProgress
	if err := json.Unmarshal([]byte(val), &stored); err != nil {
		return nil, err
	}
	// 同一标识必须对应同一课时和分片数
	if stored.LessonID != lessonID || stored.TotalChunks != req.TotalChunks {
		return nil, util.ErrInvalidChunk
	}
	return &stored, nil
}

func (s *MediaService) fillChunks(ctx context.Context, progress *model.UploadProgress) error {
	sizes, err := s.Redis.HGetAll(ctx, uploadKeyPrefix+progress.Identifier+":chunks").Result()
	if err != nil {
		return err
	}

	progress.Chunks = make(map[int]bool, len(sizes))
	progress.FileSize = 0
	for k, v := range sizes {
		n, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		size, _ := strconv.ParseInt(v, 10, 64)
		progress.Chunks[n] = true
		progress.FileSize += size
	}
	progress.UploadedChunks = len(progress.Chunks)
	return nil
}

func (s *MediaService) chunkDir(identifier string) string {
	return filepath.Join(s.TempDir, "chunks", identifier)
}

func (s *MediaService) mergeChunks(identifier, filename string, total int) (string, error) {
	dir := s.chunkDir(identifier)
	merged, err := os.CreateTemp(s.TempDir, "merged-*"+strings.ToLower(filepath.Ext(filename)))
	if err != nil {
		return "", err
	}
	defer merged.Close()

	for i := 0; i < total; i++ {
		f, err := os.Open(filepath.Join(dir, "chunk_"+strconv.Itoa(i)))
		if err != nil {
			os.Remove(merged.Name())
			return "", fmt.Errorf("%w: chunk %d missing", util.ErrInvalidChunk, i)
		}
		_, err = io.Copy(merged, f)
		f.Close()
		if err != nil {
			os.Remove(merged.Name())
			return "", err
		}
	}
	return merged.Name(), nil
}
