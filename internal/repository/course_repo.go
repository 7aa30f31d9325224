package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/study-dashboard/internal/client"
	"github.com/noah-isme/study-dashboard/internal/models"
	"github.com/noah-isme/study-dashboard/internal/observability"
)

const coursesCacheKey = "dashboard:courses"

// CourseRepository lists the student's courses.
type CourseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
}

type courseRepository struct {
	backend Backend
	logger  zerolog.Logger
}

// NewCourseRepository instantiates a backend-backed repository.
func NewCourseRepository(backend Backend, logger zerolog.Logger) CourseRepository {
	return &courseRepository{
		backend: backend,
		logger:  logger.With().Str("component", "course_repository").Logger(),
	}
}

func (r *courseRepository) List(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := r.backend.Get(ctx, client.Endpoint(client.EndpointCourses), &courses); err != nil {
		return nil, logFailure(r.logger, err, "error fetching courses")
	}

	return courses, nil
}

type cachedCourseRepository struct {
	next   CourseRepository
	cache  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedCourseRepository keeps each caller's course list in Redis for ttl,
// keyed by a hash of the bearer token. Requests without a token skip the
// cache. Cache errors are logged and the backend is used instead. A nil cache
// or a non-positive ttl returns next unchanged.
func NewCachedCourseRepository(next CourseRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) CourseRepository {
	if cache == nil || ttl <= 0 {
		return next
	}

	return &cachedCourseRepository{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With().Str("component", "course_cache").Logger(),
	}
}

func coursesCacheKeyFor(token string) string {
	sum := sha256.Sum256([]byte(token))
	return coursesCacheKey + ":" + hex.EncodeToString(sum[:])
}

func (r *cachedCourseRepository) List(ctx context.Context) ([]models.Course, error) {
	token := client.TokenFromContext(ctx)
	if token == "" {
		return r.next.List(ctx)
	}
	key := coursesCacheKeyFor(token)

	cached, err := r.cache.Get(ctx, key).Result()
	switch {
	case err == nil:
		var courses []models.Course
		if unmarshalErr := json.Unmarshal([]byte(cached), &courses); unmarshalErr == nil {
			observability.CacheLookups().WithLabelValues("courses", "hit").Inc()
			r.logger.Debug().Int("count", len(courses)).Msg("courses cache hit")
			return courses, nil
		}
		r.logger.Warn().Msg("discarding malformed courses cache entry")
	case errors.Is(err, redis.Nil):
	default:
		r.logger.Warn().Err(err).Msg("failed to read courses cache")
	}
	observability.CacheLookups().WithLabelValues("courses", "miss").Inc()

	courses, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(courses)
	if err == nil {
		if err := r.cache.Set(ctx, key, payload, r.ttl).Err(); err != nil {
			r.logger.Warn().Err(err).Msg("failed to store courses cache")
		}
	}

	return courses, nil
}
