package colors

import (
	"github.com/fatih/color"
)

var Created = color.RGB(3, 252, 202).SprintFunc()
var Removed = color.RGB(115, 115, 115).SprintFunc()
var Admin = color.RGB(255, 120, 226).SprintFunc()
var Warning = color.RGB(255, 241, 41).SprintFunc()
var Error = color.RGB(255, 41, 77).SprintFunc()
