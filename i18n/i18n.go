/*
NaiveSystems Analyze - A tool for static code analysis
Copyright (C) 2023  Naive Systems Ltd.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package i18n localizes the text of compliance reports.
package i18n

import (
	"github.com/golang/glog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var languageMap = map[string]language.Tag{"en": language.English, "zh": language.Chinese}

// Message keys. The English text is the key itself.
const (
	NotesHeadline        = "Errors occurred during processing. This report is not valid."
	SummaryVerdictPass   = "%s: compliant with %s."
	SummaryVerdictFail   = "%s: not compliant with %s."
	SummaryGuidelines    = "%d guidelines: %d compliant, %d not compliant, %d disapplied."
	SummaryViolations    = "%d violations, %d of them deviations, in %d source files."
	SummaryInformational = "%d informational warnings."
	SummaryIgnored       = "%d violations ignored by path pattern."
	StatusCompliant      = "Compliant"
	StatusNotCompliant   = "Not compliant"
	StatusDisapplied     = "Disapplied"
)

var zhMessages = map[string]string{
	NotesHeadline:        "处理过程中出现错误，本报告无效。",
	SummaryVerdictPass:   "%s：符合 %s。",
	SummaryVerdictFail:   "%s：不符合 %s。",
	SummaryGuidelines:    "共 %d 条准则：%d 条符合，%d 条不符合，%d 条不适用。",
	SummaryViolations:    "%d 处违规，其中 %d 处为偏离，涉及 %d 个源文件。",
	SummaryInformational: "%d 条提示性告警。",
	SummaryIgnored:       "%d 处违规因路径模式被忽略。",
	StatusCompliant:      "符合",
	StatusNotCompliant:   "不符合",
	StatusDisapplied:     "不适用",
}

func init() {
	for key, msg := range zhMessages {
		if err := message.SetString(language.Chinese, key, msg); err != nil {
			glog.Errorf("message.SetString(%q): %v", key, err)
		}
	}
}

func IsSupported(lang string) bool {
	_, ok := languageMap[lang]
	return ok
}

// GetPrinter falls back to English for unknown languages.
func GetPrinter(lang string) *message.Printer {
	langTag, exist := languageMap[lang]
	if !exist {
		if lang != "" {
			glog.Warningf("unsupported language %q, using en", lang)
		}
		langTag = languageMap["en"]
	}
	return message.NewPrinter(langTag)
}
