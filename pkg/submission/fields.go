package submission

// Field keys double as HTML input names, JSON keys, and YAML keys.
const (
	FieldName            = "name"
	FieldStudentID       = "student_id"
	FieldCollege         = "college"
	FieldMajor           = "major"
	FieldClass           = "class"
	FieldTeacher         = "teacher"
	FieldProjectName     = "project_name"
	FieldStartDate       = "start_date"
	FieldEndDate         = "end_date"
	FieldTrainingContent = "training_content"
	FieldTrainingForm    = "training_form"
	FieldTeacherMajor    = "teacher_major"
)

// MajorPlaceholder is printed on the cover page when no major was supplied so
// the line can still be filled in by hand.
const MajorPlaceholder = "                        "

// DateLayout is the wire format of start_date and end_date.
const DateLayout = "2006-01-02"

// DefaultRequired lists the identity fields every document needs, in the order
// they are reported back to the user.
var DefaultRequired = []string{
	FieldName,
	FieldStudentID,
	FieldCollege,
	FieldClass,
	FieldTeacher,
	FieldProjectName,
}

var labels = map[string]string{
	FieldName:            "学生姓名",
	FieldStudentID:       "学号",
	FieldCollege:         "学院",
	FieldMajor:           "专业",
	FieldClass:           "班级",
	FieldTeacher:         "指导教师",
	FieldProjectName:     "项目名称",
	FieldStartDate:       "开始日期",
	FieldEndDate:         "结束日期",
	FieldTrainingContent: "培训内容及培养目标",
	FieldTrainingForm:    "培训形式",
	FieldTeacherMajor:    "指导教师专业",
}

// Label returns the display label for a field key, falling back to the key.
func Label(key string) string {
	if label, ok := labels[key]; ok {
		return label
	}
	return key
}

// DefaultRequiredFields returns a copy of DefaultRequired.
func DefaultRequiredFields() []string {
	return append([]string(nil), DefaultRequired...)
}
