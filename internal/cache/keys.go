package cache

import (
	"strconv"
	"strings"
)

const (
	GlobalKeyPrefix = "progression"

	ServiceQuiz    = "quiz"
	ObjectMainQuiz = "main"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// MainQuizKey is the cache key of the shared Main quiz of a course week.
func MainQuizKey(courseID string, weekNumber int) string {
	return GenerateCacheKey(ServiceQuiz, ObjectMainQuiz, courseID, "week"+strconv.Itoa(weekNumber))
}
