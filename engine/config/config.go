// Package config loads view mode definitions from YAML and turns them into view mode classes.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/view"
	"gopkg.in/yaml.v3"
)

var (
	ErrMissingName   = errors.New("view mode has no name")
	ErrDuplicateName = errors.New("duplicate view mode name")
	ErrUnknownKind   = errors.New("unknown view mode kind")
	ErrThirdPerson   = errors.New("setting only applies to third_person view modes")
)

// Kind selects which view mode constructor a ViewModeSpec builds with.
type Kind string

const (
	KindBase        Kind = "base"
	KindFirstPerson Kind = "first_person"
	KindThirdPerson Kind = "third_person"
)

// PenetrationSpec holds third person penetration avoidance settings. Absent fields keep their defaults.
type PenetrationSpec struct {
	Prevent         *bool                             `yaml:"prevent"`
	Predictive      *bool                             `yaml:"predictive"`
	PushOutDistance *float64                          `yaml:"push_out_distance"`
	BlendInTime     *float64                          `yaml:"blend_in_time"`
	BlendOutTime    *float64                          `yaml:"blend_out_time"`
	ReportPercent   *float64                          `yaml:"report_percent"`
	Feelers         []view.PenetrationAvoidanceFeeler `yaml:"feelers"`
}

// ViewModeSpec is the authored definition of one view mode. Absent fields keep the constructor defaults.
type ViewModeSpec struct {
	Name                  string             `yaml:"name"`
	Kind                  Kind               `yaml:"kind"`
	FieldOfView           *float64           `yaml:"field_of_view"`
	ViewPitchMin          *float64           `yaml:"view_pitch_min"`
	ViewPitchMax          *float64           `yaml:"view_pitch_max"`
	BlendFunction         string             `yaml:"blend_function"`
	BlendTime             *float64           `yaml:"blend_time"`
	BlendExponent         *float64           `yaml:"blend_exponent"`
	CrouchBlendMultiplier *float64           `yaml:"crouch_blend_multiplier"`
	TargetOffsetX         *common.FloatCurve `yaml:"target_offset_x"`
	TargetOffsetY         *common.FloatCurve `yaml:"target_offset_y"`
	TargetOffsetZ         *common.FloatCurve `yaml:"target_offset_z"`
	Penetration           *PenetrationSpec   `yaml:"penetration"`
}

// Config is a decoded view mode file.
type Config struct {
	ViewModes []ViewModeSpec `yaml:"view_modes"`

	classes map[string]*view.ViewModeClass
	order   []string
}

// Load reads and parses a view mode file.
//
// Parameters:
//   - path: the YAML file
//
// Returns:
//   - *Config: the decoded config
//   - error: error if the file cannot be read or is invalid
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	log.Printf("[Config] loaded %d view modes from %s", len(cfg.ViewModes), path)
	return cfg, nil
}

// Parse decodes and validates view mode YAML, then builds one class per mode.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - *Config: the decoded config
//   - error: error if decoding or validation fails
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.classes = make(map[string]*view.ViewModeClass, len(cfg.ViewModes))
	for i := range cfg.ViewModes {
		spec := &cfg.ViewModes[i]
		if err := spec.normalize(); err != nil {
			return nil, fmt.Errorf("config: view mode %d: %w", i, err)
		}
		if _, ok := cfg.classes[spec.Name]; ok {
			return nil, fmt.Errorf("config: view mode %q: %w", spec.Name, ErrDuplicateName)
		}
		class, err := spec.Class()
		if err != nil {
			return nil, fmt.Errorf("config: view mode %q: %w", spec.Name, err)
		}
		cfg.classes[spec.Name] = class
		cfg.order = append(cfg.order, spec.Name)
	}
	return &cfg, nil
}

// Class returns the class built for the named view mode.
//
// Parameters:
//   - name: the view mode name
//
// Returns:
//   - *view.ViewModeClass: the class
//   - bool: false if no mode has that name
func (c *Config) Class(name string) (*view.ViewModeClass, bool) {
	class, ok := c.classes[name]
	return class, ok
}

// Classes returns the classes in file order.
//
// Returns:
//   - []*view.ViewModeClass: one class per view mode
func (c *Config) Classes() []*view.ViewModeClass {
	out := make([]*view.ViewModeClass, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.classes[name])
	}
	return out
}

func (s *ViewModeSpec) normalize() error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return ErrMissingName
	}
	s.Kind = Kind(strings.ToLower(strings.TrimSpace(string(s.Kind))))
	if s.Kind == "" {
		s.Kind = KindBase
	}
	switch s.Kind {
	case KindBase, KindFirstPerson:
		if s.TargetOffsetX != nil || s.TargetOffsetY != nil || s.TargetOffsetZ != nil {
			return fmt.Errorf("target_offset: %w", ErrThirdPerson)
		}
		if s.Penetration != nil {
			return fmt.Errorf("penetration: %w", ErrThirdPerson)
		}
	case KindThirdPerson:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
	}
	for _, c := range []*common.FloatCurve{s.TargetOffsetX, s.TargetOffsetY, s.TargetOffsetZ} {
		if c != nil {
			c.Sort()
		}
	}
	return nil
}

// Options converts the definition into view mode builder options.
//
// Returns:
//   - []view.ViewModeBuilderOption: the options
//   - error: error if the blend function is unknown
func (s *ViewModeSpec) Options() ([]view.ViewModeBuilderOption, error) {
	opts := []view.ViewModeBuilderOption{view.WithName(s.Name)}

	if s.FieldOfView != nil {
		opts = append(opts, view.WithFieldOfView(*s.FieldOfView))
	}
	if s.ViewPitchMin != nil || s.ViewPitchMax != nil {
		minPitch, maxPitch := view.DefaultViewPitchMin, view.DefaultViewPitchMax
		if s.ViewPitchMin != nil {
			minPitch = *s.ViewPitchMin
		}
		if s.ViewPitchMax != nil {
			maxPitch = *s.ViewPitchMax
		}
		opts = append(opts, view.WithViewPitchRange(minPitch, maxPitch))
	}
	if s.BlendFunction != "" {
		fn, err := view.ParseBlendFunction(s.BlendFunction)
		if err != nil {
			return nil, err
		}
		opts = append(opts, view.WithBlendFunction(fn))
	}
	if s.BlendTime != nil {
		opts = append(opts, view.WithBlendTime(*s.BlendTime))
	}
	if s.BlendExponent != nil {
		opts = append(opts, view.WithBlendExponent(*s.BlendExponent))
	}
	if s.CrouchBlendMultiplier != nil {
		opts = append(opts, view.WithCrouchBlendMultiplier(*s.CrouchBlendMultiplier))
	}

	if s.TargetOffsetX != nil || s.TargetOffsetY != nil || s.TargetOffsetZ != nil {
		opts = append(opts, view.WithTargetOffsetCurves(curveOrEmpty(s.TargetOffsetX), curveOrEmpty(s.TargetOffsetY), curveOrEmpty(s.TargetOffsetZ)))
	}

	if p := s.Penetration; p != nil {
		if p.Prevent != nil {
			opts = append(opts, view.WithPreventPenetration(*p.Prevent))
		}
		if p.Predictive != nil {
			opts = append(opts, view.WithPredictiveAvoidance(*p.Predictive))
		}
		if p.PushOutDistance != nil {
			opts = append(opts, view.WithCollisionPushOutDistance(*p.PushOutDistance))
		}
		if p.BlendInTime != nil || p.BlendOutTime != nil {
			in, out := view.DefaultPenetrationBlendInTime, view.DefaultPenetrationBlendOutTime
			if p.BlendInTime != nil {
				in = *p.BlendInTime
			}
			if p.BlendOutTime != nil {
				out = *p.BlendOutTime
			}
			opts = append(opts, view.WithPenetrationBlendTimes(in, out))
		}
		if p.ReportPercent != nil {
			opts = append(opts, view.WithReportPenetrationPercent(*p.ReportPercent))
		}
		if p.Feelers != nil {
			opts = append(opts, view.WithPenetrationFeelers(p.Feelers...))
		}
	}
	return opts, nil
}

// Class builds a view mode class from the definition. Every instance gets its own copy of the settings.
//
// Returns:
//   - *view.ViewModeClass: the class
//   - error: error if the definition is invalid
func (s *ViewModeSpec) Class() (*view.ViewModeClass, error) {
	opts, err := s.Options()
	if err != nil {
		return nil, err
	}

	switch s.Kind {
	case KindFirstPerson:
		return view.NewViewModeClass(s.Name, func(owner view.Owner) view.ViewMode {
			return view.NewFirstPersonViewMode(owner, opts...)
		}), nil
	case KindThirdPerson:
		return view.NewViewModeClass(s.Name, func(owner view.Owner) view.ViewMode {
			return view.NewThirdPersonViewMode(owner, opts...)
		}), nil
	case KindBase, "":
		return view.NewViewModeClass(s.Name, func(owner view.Owner) view.ViewMode {
			return view.NewViewMode(owner, opts...)
		}), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
	}
}

func curveOrEmpty(c *common.FloatCurve) common.FloatCurve {
	if c == nil {
		return common.FloatCurve{}
	}
	return *c
}
