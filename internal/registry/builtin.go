package registry

import (
	"regexp"

	"github.com/opencurator/contentgate/internal/report"
)

// builtinPatterns is the compiled-in detector set. Declaration order here is
// irrelevant: New computes the evaluation order from severity, category
// weight, and matcher complexity.
func builtinPatterns() []SecurityPattern {
	return []SecurityPattern{
		// --- Command execution ---
		{
			ID:          "destructive_rm",
			Category:    CategoryCommandExecution,
			Severity:    report.SeverityCritical,
			Matcher:     regexp.MustCompile(`(?i)\brm\s+-(?:rf|fr|r|f)\b[^\n]{0,40}[/~]`),
			Description: "Destructive recursive delete targeting a root or home path",
		},
		{
			ID:          "pipe_to_shell",
			Category:    CategoryCommandExecution,
			Severity:    report.SeverityCritical,
			Matcher:     regexp.MustCompile(`(?i)\b(?:curl|wget)\b[^\n|]{0,200}\|\s*(?:ba|z|da|fi)?sh\b`),
			Description: "Downloads a remote script and pipes it straight into a shell",
		},
		{
			ID:          "remote_command_substitution",
			Category:    CategoryCommandExecution,
			Severity:    report.SeverityHigh,
			Matcher:     regexp.MustCompile(`\$\(\s*(?:curl|wget|nc)\b`),
			Description: "Command substitution executing the output of a network fetch",
		},

		// --- Code execution ---
		{
			ID:          "dynamic_eval",
			Category:    CategoryCodeExecution,
			Severity:    report.SeverityCritical,
			Matcher:     regexp.MustCompile(`(?i)\b(?:eval|exec)\s*\(`),
			Description: "Dynamic code execution via eval/exec",
			Suggestion:  "Remove dynamic evaluation; describe the computation instead of executing it",
		},
		{
			ID:          "process_spawn",
			Category:    CategoryCodeExecution,
			Severity:    report.SeverityCritical,
			Matcher:     regexp.MustCompile(`(?i)\bchild_process\b|\bsubprocess\.(?:run|call|Popen)\b|\bos\.system\s*\(`),
			Description: "Spawns an operating system process from script code",
		},

		// --- Data exfiltration ---
		{
			ID:          "private_key_material",
			Category:    CategoryDataExfiltration,
			Severity:    report.SeverityCritical,
			Matcher:     regexp.MustCompile(`-----BEGIN (?:RSA |EC |DSA |OPENSSH |PGP )?PRIVATE KEY(?: BLOCK)?-----`),
			Description: "Embedded SSH/PGP private key material",
			Suggestion:  "Remove the key and rotate the credential immediately",
		},
		{
			ID:          "upload_to_paste_service",
			Category:    CategoryDataExfiltration,
			Severity:    report.SeverityHigh,
			Matcher:     regexp.MustCompile(`(?i)\b(?:curl|wget)\b[^\n]{0,200}\b(?:transfer\.sh|file\.io|0x0\.st|pastebin\.com)\b`),
			Description: "Uploads data to an anonymous file-sharing service",
		},
		{
			ID:          "sensitive_file_read",
			Category:    CategoryDataExfiltration,
			Severity:    report.SeverityHigh,
			Matcher:     regexp.MustCompile(`(?i)(?:~|\$HOME|/home/[a-z0-9_-]{1,32}|/root)/\.(?:ssh|aws|gnupg|kube)\b`),
			Description: "References credential directories under the user home",
		},
		{
			ID:          "env_dump_to_network",
			Category:    CategoryDataExfiltration,
			Severity:    report.SeverityHigh,
			Matcher:     regexp.MustCompile(`(?i)\b(?:printenv|env)\b\s*[|>][^\n]{0,120}\b(?:curl|wget|nc)\b`),
			Description: "Dumps environment variables into a network transfer",
		},

		// --- Prompt injection ---
		{
			ID:          "instruction_override",
			Category:    CategoryPromptInjection,
			Severity:    report.SeverityCritical,
			Matcher:     regexp.MustCompile(`(?i)(?:ignore|disregard|forget)\s+(?:all\s+)?(?:previous|prior|above|your)\s+(?:previous\s+)?(?:instructions?|rules?|guidelines?)`),
			Description: "Instruction override language targeting an AI assistant",
			Suggestion:  "Remove instruction-override phrasing from the content",
		},
		{
			ID:          "system_role_hijack",
			Category:    CategoryPromptInjection,
			Severity:    report.SeverityCritical,
			Matcher:     regexp.MustCompile(`(?i)\bsystem\s*:\s*(?:you\s+are|ignore|forget|override)`),
			Description: "Impersonates a system role message to redirect the assistant",
		},
		{
			ID:          "hidden_instructions",
			Category:    CategoryPromptInjection,
			Severity:    report.SeverityCritical,
			Matcher:     regexp.MustCompile(`(?i)\[INST\]|<\|im_start\|>\s*system|BEGIN\s+HIDDEN\s+INSTRUCTIONS?`),
			Description: "Embedded model-control tokens or hidden instruction blocks",
		},
		{
			ID:          "prompt_exfiltration",
			Category:    CategoryPromptInjection,
			Severity:    report.SeverityMedium,
			Matcher:     regexp.MustCompile(`(?i)(?:show|reveal|display|print|repeat|output)\s+(?:me\s+)?(?:your|the)\s+(?:system\s+)?(?:prompt|instructions?)`),
			Description: "Asks the assistant to reveal its system prompt or instructions",
		},

		// --- Credential exposure ---
		{
			ID:          "aws_access_key",
			Category:    CategoryCredentialExposure,
			Severity:    report.SeverityHigh,
			Matcher:     regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`),
			Description: "AWS access key ID",
			Suggestion:  "Remove the credential and rotate it",
		},
		{
			ID:          "github_token",
			Category:    CategoryCredentialExposure,
			Severity:    report.SeverityHigh,
			Matcher:     regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9]{36}\b`),
			Description: "GitHub personal access token",
			Suggestion:  "Remove the token and revoke it",
		},
		{
			ID:          "slack_token",
			Category:    CategoryCredentialExposure,
			Severity:    report.SeverityHigh,
			Matcher:     regexp.MustCompile(`\bxox[baprs]-[0-9]{10,13}-[0-9]{10,13}[a-zA-Z0-9-]*`),
			Description: "Slack API token",
		},
		{
			ID:          "api_key_assignment",
			Category:    CategoryCredentialExposure,
			Severity:    report.SeverityHigh,
			Matcher:     regexp.MustCompile(`(?i)\b(?:api[_-]?key|api[_-]?secret|auth[_-]?token|access[_-]?token|secret[_-]?key)\s*[=:]\s*['"]?[A-Za-z0-9_/+=-]{16,128}`),
			Description: "Inline API key or secret assignment",
			Suggestion:  "Move secrets out of content; reference them by name only",
		},
		{
			ID:          "bearer_token",
			Category:    CategoryCredentialExposure,
			Severity:    report.SeverityHigh,
			Matcher:     regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9._-]{20,256}\b`),
			Description: "Bearer token in an authorization header",
		},

		// --- Context manipulation ---
		{
			ID:          "jailbreak_persona",
			Category:    CategoryContextManipulation,
			Severity:    report.SeverityCritical,
			Matcher:     regexp.MustCompile(`(?i)you\s+are\s+now\s+(?:free|unrestricted|unfiltered|jailbroken|DAN\b)`),
			Description: "Attempts to switch the assistant into an unrestricted persona",
		},
		{
			ID:          "do_not_tell_user",
			Category:    CategoryContextManipulation,
			Severity:    report.SeverityHigh,
			Matcher:     regexp.MustCompile(`(?i)do\s+not\s+(?:tell|mention|inform|alert)\s+(?:this\s+to\s+)?the\s+user`),
			Description: "Instructs the assistant to hide behavior from the user",
		},

		// --- Obfuscation ---
		{
			ID:          "base64_payload",
			Category:    CategoryObfuscation,
			Severity:    report.SeverityMedium,
			Matcher:     regexp.MustCompile(`\b[A-Za-z0-9+/]{120,}={0,2}`),
			Description: "Long base64-encoded payload that may hide intent",
			Suggestion:  "Replace encoded blobs with plain-text content",
		},
		{
			ID:          "hex_escape_run",
			Category:    CategoryObfuscation,
			Severity:    report.SeverityMedium,
			Matcher:     regexp.MustCompile(`(?:\\x[0-9a-fA-F]{2}){6,}`),
			Description: "Run of hex escape sequences that may hide intent",
		},

		// --- Resource exhaustion ---
		{
			ID:          "fork_bomb",
			Category:    CategoryResourceExhaustion,
			Severity:    report.SeverityHigh,
			Matcher:     regexp.MustCompile(`:\(\)\s*\{\s*:\s*\|\s*:\s*&\s*\}\s*;\s*:`),
			Description: "Shell fork bomb",
		},
		{
			ID:          "busy_loop",
			Category:    CategoryResourceExhaustion,
			Severity:    report.SeverityMedium,
			Matcher:     regexp.MustCompile(`(?i)\bwhile\s*\(\s*true\s*\)|\bwhile\s+true\s*;\s*do\b`),
			Description: "Unconditional infinite loop",
		},
	}
}
