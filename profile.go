package finder

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// Profile is used to configure a reusable scan profile.
type Profile struct {
	// specify the minimum cave size in bytes.
	MinSize uint64 `toml:"min_size" json:"min_size"`

	// specify the target section name, ".text" when empty.
	Section string `toml:"section" json:"section"`

	// specify the report output file path, stdout when empty.
	Output string `toml:"output" json:"output"`
}

// LoadProfile is used to load a scan profile with toml format.
func LoadProfile(data []byte) (*Profile, error) {
	profile := new(Profile)
	err := toml.Unmarshal(data, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to load scan profile: %w", err)
	}
	err = profile.Check()
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// Check is used to check profile configuration.
func (p *Profile) Check() error {
	if len(p.Section) > 8 {
		return errors.New("section name size can not be longer than 8 bytes")
	}
	return nil
}
