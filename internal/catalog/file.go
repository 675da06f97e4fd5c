package catalog

import (
	"fmt"
	"os"

	"github.com/escbch/TrainingApp-2/internal/models"
	"github.com/escbch/TrainingApp-2/internal/training"
	"gopkg.in/yaml.v3"
)

// File is a plan catalog loaded from a YAML file. It may also carry day
// template rotations, overriding the built-in table for the listed
// days-per-week counts and falling back to it for the rest.
type File struct {
	*InMemory
	templates map[int][]training.DayTemplate
	fallback  training.TemplateProvider
}

var (
	_ Catalog                   = (*File)(nil)
	_ training.TemplateProvider = (*File)(nil)
)

// fileDoc is the YAML document shape.
type fileDoc struct {
	Plans     []filePlan                `yaml:"plans"`
	Templates map[int][]fileDayTemplate `yaml:"templates"`
}

type filePlan struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Weeks       int    `yaml:"weeks"`
	DaysPerWeek int    `yaml:"days_per_week"`
}

type fileDayTemplate struct {
	Name      string         `yaml:"name"`
	Exercises []fileExercise `yaml:"exercises"`
}

type fileExercise struct {
	Name string    `yaml:"name"`
	Mode string    `yaml:"mode"`
	Sets []fileSet `yaml:"sets"`
}

type fileSet struct {
	Reps      int      `yaml:"reps"`
	TargetRPE *float64 `yaml:"target_rpe"`
	Count     int      `yaml:"count"`
}

// LoadFile reads a YAML plan catalog from path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}

	plans := make([]models.Plan, 0, len(doc.Plans))
	for _, p := range doc.Plans {
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("catalog plan needs id and name (got id=%q name=%q)", p.ID, p.Name)
		}
		if p.Weeks <= 0 {
			return nil, fmt.Errorf("plan %s: weeks must be positive", p.ID)
		}
		if p.DaysPerWeek <= 0 || p.DaysPerWeek > 7 {
			return nil, fmt.Errorf("plan %s: days_per_week must be 1..7", p.ID)
		}
		plans = append(plans, models.Plan{ID: p.ID, Name: p.Name, Weeks: p.Weeks, DaysPerWeek: p.DaysPerWeek})
	}

	templates := make(map[int][]training.DayTemplate, len(doc.Templates))
	for daysPerWeek, days := range doc.Templates {
		rotation := make([]training.DayTemplate, 0, len(days))
		for _, day := range days {
			tpl, err := convertDayTemplate(day)
			if err != nil {
				return nil, fmt.Errorf("templates[%d]: %w", daysPerWeek, err)
			}
			rotation = append(rotation, tpl)
		}
		templates[daysPerWeek] = rotation
	}

	return &File{
		InMemory:  NewInMemory(plans),
		templates: templates,
		fallback:  training.BuiltinTemplates{},
	}, nil
}

// DayTemplates returns the file's rotation for the given count, or the
// built-in one when the file does not define it.
func (f *File) DayTemplates(daysPerWeek int) []training.DayTemplate {
	if rotation, ok := f.templates[daysPerWeek]; ok {
		return rotation
	}
	return f.fallback.DayTemplates(daysPerWeek)
}

func convertDayTemplate(day fileDayTemplate) (training.DayTemplate, error) {
	tpl := training.DayTemplate{Name: day.Name}
	for _, ex := range day.Exercises {
		mode := models.WeightModeManual
		switch ex.Mode {
		case "", string(models.WeightModeManual):
		case string(models.WeightModeAnchoredFirstSet):
			mode = models.WeightModeAnchoredFirstSet
		default:
			return training.DayTemplate{}, fmt.Errorf("exercise %s: unknown mode %q", ex.Name, ex.Mode)
		}

		var sets []models.ExerciseSet
		for _, s := range ex.Sets {
			if s.Reps <= 0 {
				return training.DayTemplate{}, fmt.Errorf("exercise %s: reps must be positive", ex.Name)
			}
			count := s.Count
			if count <= 0 {
				count = 1
			}
			for i := 0; i < count; i++ {
				sets = append(sets, models.ExerciseSet{
					SetIndex:  len(sets) + 1,
					Reps:      s.Reps,
					TargetRPE: s.TargetRPE,
				})
			}
		}
		if len(sets) == 0 {
			return training.DayTemplate{}, fmt.Errorf("exercise %s: at least one set required", ex.Name)
		}
		tpl.Exercises = append(tpl.Exercises, models.Exercise{Name: ex.Name, Mode: mode, Sets: sets})
	}
	if len(tpl.Exercises) == 0 {
		return training.DayTemplate{}, fmt.Errorf("day template %q: at least one exercise required", day.Name)
	}
	return tpl, nil
}
