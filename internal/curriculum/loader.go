package curriculum

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"quiz-progression/internal/domain"
	"quiz-progression/internal/logger"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Loader reads course curricula from YAML files and keeps them in memory.
type Loader struct {
	rootDir string
	courses map[string]*domain.Course
	mu      sync.RWMutex
}

// NewLoader loads every *.yaml / *.yml file under rootDir.
func NewLoader(rootDir string) (*Loader, error) {
	l := &Loader{
		rootDir: rootDir,
		courses: make(map[string]*domain.Course),
	}
	if err := l.loadAll(); err != nil {
		return nil, fmt.Errorf("loading curriculum: %w", err)
	}
	logger.Get().Info("Curriculum loaded", zap.String("dir", rootDir), zap.Int("courses", len(l.courses)))
	return l, nil
}

// NewStatic serves an in-memory set of courses.
func NewStatic(courses ...domain.Course) (*Loader, error) {
	l := &Loader{courses: make(map[string]*domain.Course, len(courses))}
	for i := range courses {
		if err := l.add(courses[i], "static"); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Course returns the course or a NotFound error.
func (l *Loader) Course(courseID string) (*domain.Course, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	c, ok := l.courses[courseID]
	if !ok {
		return nil, domain.NewNotFoundError(fmt.Sprintf("course %s not found", courseID))
	}
	return c, nil
}

// Courses lists the loaded courses ordered by id.
func (l *Loader) Courses() []*domain.Course {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*domain.Course, 0, len(l.courses))
	for _, c := range l.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (l *Loader) loadAll() error {
	info, err := os.Stat(l.rootDir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", l.rootDir)
	}
	return filepath.Walk(l.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
			return l.loadCourse(path)
		}
		return nil
	})
}

func (l *Loader) loadCourse(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var course domain.Course
	if err := yaml.Unmarshal(data, &course); err != nil {
		logger.Get().Warn("Skipping invalid curriculum YAML", zap.String("path", path), zap.Error(err))
		return nil
	}
	if course.ID == "" {
		return nil // not a course file
	}
	return l.add(course, path)
}

func (l *Loader) add(course domain.Course, source string) error {
	if err := validateCourse(&course); err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	sort.SliceStable(course.Weeks, func(i, j int) bool { return course.Weeks[i].Number < course.Weeks[j].Number })

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, dup := l.courses[course.ID]; dup {
		return fmt.Errorf("%s: duplicate course id %s", source, course.ID)
	}
	l.courses[course.ID] = &course
	return nil
}

func validateCourse(c *domain.Course) error {
	weeks := make(map[int]struct{}, len(c.Weeks))
	topics := make(map[string]struct{})
	for _, w := range c.Weeks {
		if w.Number < 1 {
			return fmt.Errorf("course %s: week number must be positive, got %d", c.ID, w.Number)
		}
		if _, dup := weeks[w.Number]; dup {
			return fmt.Errorf("course %s: duplicate week %d", c.ID, w.Number)
		}
		weeks[w.Number] = struct{}{}
		for _, t := range w.Topics {
			if t.ID == "" {
				return fmt.Errorf("course %s week %d: topic without id", c.ID, w.Number)
			}
			if _, dup := topics[t.ID]; dup {
				return fmt.Errorf("course %s: duplicate topic id %s", c.ID, t.ID)
			}
			topics[t.ID] = struct{}{}
		}
	}
	return nil
}

var _ domain.Curriculum = (*Loader)(nil)
