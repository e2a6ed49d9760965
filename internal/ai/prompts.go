package ai

import "strings"

const resultPlaceholder = "{result_content}"

const crashPrompt = `You are an expert Android developer and crash analyzer.

Analyze the following Android crash logs and provide:

1. **Root Cause**: What caused each crash? Explain in simple terms.
2. **Affected Components**: Which Android components, activities, or services are involved?
3. **Severity Assessment**: How critical is each crash? (Critical/High/Medium/Low)
4. **Fix Recommendations**: Specific code changes or fixes needed for each crash.
5. **Prevention Tips**: Best practices to prevent similar crashes in the future.

Be concise, actionable, and prioritize the most critical crashes first.

` + resultPlaceholder

// BuildCrashPrompt substitutes the rendered report into the analysis prompt.
func BuildCrashPrompt(reportText string) string {
	return strings.Replace(crashPrompt, resultPlaceholder, reportText, 1)
}
