package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Locator says how a control's Value addresses the page.
type Locator string

const (
	ByName  Locator = "name"
	ByCSS   Locator = "css"
	ByXPath Locator = "xpath"
)

// Control addresses one element of the legacy form. Commit sends a Tab
// after typing, for inputs that only validate on blur.
type Control struct {
	By     Locator
	Value  string
	Commit bool
}

func (c Control) String() string {
	return string(c.By) + "=" + c.Value
}

// Selector renders the control as a CSS selector. XPath controls have none.
func (c Control) Selector() (string, bool) {
	switch c.By {
	case ByName:
		return fmt.Sprintf("[name=%q]", c.Value), true
	case ByCSS:
		return c.Value, true
	default:
		return "", false
	}
}

// Logical control names.
const (
	CtlUsername      = "username"
	CtlPassword      = "password"
	CtlLogin         = "login"
	CtlReports       = "reports"
	CtlRangeFrom     = "range_from"
	CtlRangeTo       = "range_to"
	CtlRangeSubmit   = "range_submit"
	CtlDate          = "date"
	CtlOP            = "op"
	CtlOperator      = "operator"
	CtlActivity      = "activity"
	CtlOrdinaryHours = "ordinary_hours"
	CtlOvertimeHours = "overtime_hours"
	CtlTeam          = "team"
	CtlSubmit        = "submit"
	CtlConfirm       = "confirm"
)

// FormSpec maps logical control names to page locators. It is the
// versioned contract with the legacy system.
type FormSpec struct {
	Controls map[string]Control
}

// DefaultFormSpec returns the control names the legacy form uses today.
func DefaultFormSpec() FormSpec {
	return FormSpec{Controls: map[string]Control{
		CtlUsername:      {By: ByName, Value: "txtUsuario"},
		CtlPassword:      {By: ByName, Value: "txtPass"},
		CtlLogin:         {By: ByXPath, Value: "/html/body/form/div[4]/button"},
		CtlReports:       {By: ByXPath, Value: "/html/body/aside/div/ul/li[8]/a"},
		CtlRangeFrom:     {By: ByName, Value: "txtFechaI"},
		CtlRangeTo:       {By: ByName, Value: "txtFechaF"},
		CtlRangeSubmit:   {By: ByXPath, Value: "/html/body/table/tbody/tr[3]/td/div/input[2]"},
		CtlDate:          {By: ByName, Value: "fecha", Commit: true},
		CtlOP:            {By: ByName, Value: "cboOPF"},
		CtlOperator:      {By: ByName, Value: "cboOperario"},
		CtlActivity:      {By: ByName, Value: "txtActividad"},
		CtlOrdinaryHours: {By: ByName, Value: "txtTiempoOrdinario"},
		CtlOvertimeHours: {By: ByName, Value: "txtTiempoExtra"},
		CtlTeam:          {By: ByName, Value: "cboEquipo"},
		CtlSubmit:        {By: ByXPath, Value: "/html/body/div[3]/table/tbody/tr[17]/td/div/input"},
		CtlConfirm:       {By: ByXPath, Value: "/html/body/div[3]/table/tbody/tr[3]/td[1]/button"},
	}}
}

// Control looks up a logical control.
func (f FormSpec) Control(name string) (Control, error) {
	c, ok := f.Controls[name]
	if !ok {
		return Control{}, fmt.Errorf("form spec has no %q control", name)
	}
	return c, nil
}

// Validate checks that every logical control is present and well formed.
func (f FormSpec) Validate() error {
	for name := range DefaultFormSpec().Controls {
		c, ok := f.Controls[name]
		if !ok {
			return fmt.Errorf("form spec: missing control %q", name)
		}
		if err := validateControl(name, c); err != nil {
			return err
		}
	}
	return nil
}

func validateControl(name string, c Control) error {
	switch c.By {
	case ByName, ByCSS, ByXPath:
	default:
		return fmt.Errorf("form spec: control %q: unknown locator %q", name, c.By)
	}
	if c.Value == "" {
		return fmt.Errorf("form spec: control %q: empty value", name)
	}
	return nil
}

type controlFile struct {
	By     Locator `yaml:"by"`
	Value  string  `yaml:"value"`
	Commit *bool   `yaml:"commit"`
}

type formFile struct {
	Controls map[string]controlFile `yaml:"controls"`
}

// ParseFormSpec overlays a YAML document on the defaults. Keys left out
// keep their default locator; unknown keys are rejected.
func ParseFormSpec(data []byte) (FormSpec, error) {
	var file formFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return FormSpec{}, fmt.Errorf("parsing form spec: %w", err)
	}

	spec := DefaultFormSpec()
	names := make([]string, 0, len(file.Controls))
	for name := range file.Controls {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		base, ok := spec.Controls[name]
		if !ok {
			return FormSpec{}, fmt.Errorf("form spec: unknown control %q", name)
		}
		override := file.Controls[name]
		if override.By != "" {
			base.By = override.By
		}
		if override.Value != "" {
			base.Value = override.Value
		}
		if override.Commit != nil {
			base.Commit = *override.Commit
		}
		if err := validateControl(name, base); err != nil {
			return FormSpec{}, err
		}
		spec.Controls[name] = base
	}
	return spec, nil
}

// LoadFormSpec reads a form spec file. An empty path yields the defaults.
func LoadFormSpec(path string) (FormSpec, error) {
	if path == "" {
		return DefaultFormSpec(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return FormSpec{}, fmt.Errorf("reading form spec: %w", err)
	}
	return ParseFormSpec(data)
}
