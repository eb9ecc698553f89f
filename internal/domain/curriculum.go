package domain

// Resource is a static learning material attached to a topic.
type Resource struct {
	Type  string `yaml:"type" json:"type"`
	Title string `yaml:"title" json:"title"`
	URL   string `yaml:"url" json:"url"`
}

// Topic is one unit of a curriculum week.
type Topic struct {
	ID        string     `yaml:"id" json:"id"`
	Title     string     `yaml:"title" json:"title"`
	Summary   string     `yaml:"summary" json:"summary,omitempty"`
	Resources []Resource `yaml:"resources" json:"resources,omitempty"`
}

type Week struct {
	Number int     `yaml:"number" json:"number"`
	Title  string  `yaml:"title" json:"title"`
	Topics []Topic `yaml:"topics" json:"topics"`
}

// Course is the curriculum of one course.
type Course struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
	Weeks []Week `yaml:"weeks" json:"weeks"`
}

// Week returns the week with the given number.
func (c *Course) Week(number int) (*Week, bool) {
	for i := range c.Weeks {
		if c.Weeks[i].Number == number {
			return &c.Weeks[i], true
		}
	}
	return nil, false
}

// FindTopic searches every week for a topic id.
func (c *Course) FindTopic(topicID string) (*Topic, bool) {
	for i := range c.Weeks {
		for j := range c.Weeks[i].Topics {
			if c.Weeks[i].Topics[j].ID == topicID {
				return &c.Weeks[i].Topics[j], true
			}
		}
	}
	return nil, false
}

// Curriculum provides read access to course structures.
type Curriculum interface {
	// Course returns the course or a NotFound error.
	Course(courseID string) (*Course, error)
}
