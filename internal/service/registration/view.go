package registration

// Input kinds used by TextField.
const (
	KindText  = "text"
	KindEmail = "email"
)

// TextField is one labeled input of the rendered form.
type TextField struct {
	Path  string
	Label string
	Kind  string
	Value string
	Error string
}

// SelectField is one date-of-birth selector. Date parts have no rules, so a
// selector never carries an error.
type SelectField struct {
	Path        string
	Placeholder string
	Options     []string
	Value       string
}

// View is everything needed to render the form.
type View struct {
	Title       string
	Fields      []TextField
	BirthLabel  string
	Birth       []SelectField
	SubmitLabel string
	State       State
}

var textFields = []struct {
	path, label, kind string
}{
	{PathFirstName, "First Name", KindText},
	{PathLastName, "Last Name", KindText},
	{PathEmail, "Email", KindEmail},
	{PathCompany, "Company", KindText},
}

// View returns the render model. Errors are included only while they belong
// to the latest submit attempt.
func (f *Form) View() View {
	errs := map[string]string{}
	if f.state == StateSubmitAttempted {
		errs = f.errors
	}

	v := View{
		Title:       "Registration",
		BirthLabel:  "Date of Birth",
		SubmitLabel: "Register",
		State:       f.state,
	}
	for _, tf := range textFields {
		value, _ := f.draft.Value(tf.path)
		v.Fields = append(v.Fields, TextField{
			Path:  tf.path,
			Label: tf.label,
			Kind:  tf.kind,
			Value: value,
			Error: errs[tf.path],
		})
	}

	selects := []struct {
		path, placeholder string
		options           []string
	}{
		{PathBirthMonth, "Month", f.options.Months},
		{PathBirthDay, "Day", f.options.Days},
		{PathBirthYear, "Year", f.options.Years},
	}
	for _, sf := range selects {
		value, _ := f.draft.Value(sf.path)
		v.Birth = append(v.Birth, SelectField{
			Path:        sf.path,
			Placeholder: sf.placeholder,
			Options:     sf.options,
			Value:       value,
		})
	}
	return v
}
