package prompt

func GetExplainPrompt(selection string) string {
	return `As a senior software architect, explain the logic and purpose of the following code in detail:
` + selection + `
Answer with the following sections, in order:
1. **Summary**: one sentence describing the core purpose of this code.
2. **Walkthrough**: a technical, line-level reading of the key logic. Skip basic syntax and focus on the algorithm or business logic.
3. **Design**: the design patterns or techniques this code uses, if any.`
}

func GetFixBugPrompt(selection string) string {
	return `As an expert debugger, analyze the following code:
` + selection + `
Answer with the following sections, in order:
1. **Root cause**: point out exactly what is wrong, or which logic has a gap.
2. **Fixed code**: the complete, corrected code wrapped in a Markdown code block.
3. **What changed**: briefly compare the code before and after the fix (for example: it used approach X, now it uses approach Y).`
}

func GetSecurityScanPrompt(selection string) string {
	return `You are a senior cybersecurity expert. Perform a strict security audit of the following code:
` + selection + `
Answer with the following sections, in order:
1. **Vulnerabilities**: the concrete security flaws in this code (for example SQL injection, XSS, CSRF, hardcoded secrets, buffer overflow).
2. **Attack scenario**: how an attacker could exploit each flaw.
3. **Remediation**: a fixed, secure version of the code in a Markdown code block, and why the fix works.`
}

func GetCustomPrompt(selection, instruction string) string {
	return `You are a professional coding assistant. Carry out the user's request on the following code.
**Request**: ` + instruction + `
**Code**:
` + selection + `
Output the result directly, formatted as Markdown.`
}
