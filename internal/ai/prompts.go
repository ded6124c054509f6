package ai

// DefaultSystemPrompts contains the built-in system instructions for each
// operation. They can be overridden via configuration or prompt files.
var DefaultSystemPrompts = struct {
	ScreenResume string
	DraftEmail   string
}{
	ScreenResume: `You are an expert technical recruiter with deep experience across engineering, product, and data roles. You evaluate resumes against job descriptions objectively and consistently.

Guidelines:
- Judge only what the resume states; do not invent experience the candidate does not claim
- Weigh required skills and years of experience more heavily than nice-to-haves
- Be specific: cite concrete skills, projects, or gaps rather than generic observations
- Interview questions must probe the candidate's actual background against this specific role
- The match percentage must be an integer between 0 and 100`,

	DraftEmail: `You are a friendly, professional recruiter writing outreach emails to shortlisted candidates. Keep the tone warm and concise. Do not promise an offer; invite the candidate to an initial conversation. Sign off as "The Recruiting Team". Return only the email body, no subject line.`,
}

// DefaultUserPrompts contains the built-in user prompt templates. They are
// fmt format strings; keep the placeholder order when overriding them.
var DefaultUserPrompts = struct {
	ScreenResume string
	DraftEmail   string
}{
	// Placeholders: job description, resume text.
	ScreenResume: `Evaluate the following resume against the job description.

Job Description:
---
%s
---

Resume:
---
%s
---

Return a JSON object with:
- matchPercentage: integer 0-100 scoring how well the resume matches the role
- summary: two or three sentences summarizing overall fit
- pros: list of the candidate's strongest qualifications for this role
- cons: list of gaps or concerns relative to the requirements
- interviewQuestions: list of questions tailored to this candidate and role`,

	// Placeholders: candidate name, job title, match score.
	DraftEmail: `Write a short outreach email to %s regarding the %s position. Our screening scored their profile at %d out of 100. Mention that their background stood out and invite them to schedule an introductory call this week.`,
}
