package typemap

import (
	"strings"

	"github.com/goliatone/go-mvcgen/pkg/schema"
)

// Tag is a System.ComponentModel.DataAnnotations.DataType member.
type Tag string

const (
	TagDate          Tag = "DataType.Date"
	TagDateTime      Tag = "DataType.DateTime"
	TagDuration      Tag = "DataType.Duration"
	TagEmailAddress  Tag = "DataType.EmailAddress"
	TagHTML          Tag = "DataType.Html"
	TagImageURL      Tag = "DataType.ImageUrl"
	TagMultilineText Tag = "DataType.MultilineText"
	TagPassword      Tag = "DataType.Password"
	TagPhoneNumber   Tag = "DataType.PhoneNumber"
	TagPostalCode    Tag = "DataType.PostalCode"
	TagText          Tag = "DataType.Text"
	TagTime          Tag = "DataType.Time"
	TagUpload        Tag = "DataType.Upload"
	TagURL           Tag = "DataType.Url"
)

// SettingEditTime switches calendar controls between date and date-time.
const SettingEditTime = "EditTime"

// dateControls resolve their tag from the EditTime setting.
var dateControls = map[string]struct{}{
	"calendarcontrol":   {},
	"due_date_selector": {},
}

var controlTags = map[string]Tag{
	"dateintervalselector":  TagDuration,
	"timeintervalselector":  TagDuration,
	"emailinput":            TagEmailAddress,
	"htmlareacontrol":       TagHTML,
	"imagedialogselector":   TagImageURL,
	"imageselectioncontrol": TagImageURL,
	"productimageselector":  TagImageURL,
	"largetextarea":         TagMultilineText,
	"textareacontrol":       TagMultilineText,
	"encryptedpassword":     TagPassword,
	"formpassword":          TagPassword,
	"password":              TagPassword,
	"passwordconfirmator":   TagPassword,
	"internationalphone":    TagPhoneNumber,
	"usphone":               TagPhoneNumber,
	"uszipcode":             TagPostalCode,
	"textboxcontrol":        TagText,
	"time_selector":         TagTime,
	"directuploadcontrol":   TagUpload,
	"uploadcontrol":         TagUpload,
	"uploadfile":            TagUpload,
	"go_to_external_url":    TagURL,
	"urlselector":           TagURL,
}

// SettingsFunc looks up a control setting by key.
type SettingsFunc func(key string) (string, bool)

// AnnotationTag returns the data-type hint for control. Unknown controls
// report false; that is not an error.
func AnnotationTag(control string, settings SettingsFunc) (Tag, bool) {
	name := strings.ToLower(strings.TrimSpace(control))
	if _, ok := dateControls[name]; ok {
		if settings != nil {
			if value, found := settings(SettingEditTime); found && strings.EqualFold(strings.TrimSpace(value), "true") {
				return TagDateTime, true
			}
		}
		return TagDate, true
	}
	tag, ok := controlTags[name]
	return tag, ok
}

// FieldTag is AnnotationTag applied to a field's control and settings.
func FieldTag(field schema.Field) (Tag, bool) {
	return AnnotationTag(field.ControlName(), field.Setting)
}
