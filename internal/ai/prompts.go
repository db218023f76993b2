package ai

import (
	"bytes"
	"fmt"
	"text/template"

	jsoniter "github.com/json-iterator/go"
	"github.com/thomas-vilte/commitsage/internal/models"
)

var promptJSON = jsoniter.Config{
	EscapeHTML:  false,
	SortMapKeys: true,
}.Froze()

const (
	summaryIntroEN = `I need a summary of code changes made to a git repository.

Ignore issue tracker issues and do not include or mention associated issues in the summary.

Summarize all the changes together in a single paragraph not in a list.
Respond with a maximum total of 4 sentences.

Please focus on the types of changes.
Do not focus on the names of the files, do not focus on the number of lines edited.
`

	summaryIntroES = `Necesito un resumen de los cambios de código hechos en un repositorio git.

Ignorá los issues del gestor de tareas y no incluyas ni menciones issues asociados en el resumen.

Resumí todos los cambios juntos en un único párrafo, no en una lista.
Respondé con un máximo total de 4 oraciones.

Enfocate en los tipos de cambios.
No te enfoques en los nombres de los archivos ni en la cantidad de líneas editadas.
`
)

// PromptData holds the parameters for template rendering
type PromptData struct {
	Intro         string
	PullRequests  string
	CommitMessage string
	Patches       string
	KindName      string
	Items         []string
}

// RenderPrompt renders a prompt template with the provided data
func RenderPrompt(name, tmplStr string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("error parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("error executing template %s: %w", name, err)
	}

	return buf.String(), nil
}

const (
	commitSummaryTemplateEN = `{{.Intro}}
Pull request text: {{.PullRequests}}

Commit message: {{.CommitMessage}}

Code patches: {{.Patches}}
`

	commitSummaryTemplateES = `{{.Intro}}
Texto de los pull requests: {{.PullRequests}}

Mensaje del commit: {{.CommitMessage}}

Parches de código: {{.Patches}}
`

	commitReviewTemplateEN = `You are a sceptical software engineer doing a code review.

Does the commit message contradict the code diff to the point where the commit message is not accurately telling the truth about the code patch?

If so explain, if not say so.

Commit message: {{.CommitMessage}}

Code patches: {{.Patches}}
`

	commitReviewTemplateES = `Sos un ingeniero de software escéptico haciendo una revisión de código.

¿El mensaje del commit contradice el diff hasta el punto de no describir con veracidad el parche de código?

Si es así explicá por qué, si no, decilo.

Mensaje del commit: {{.CommitMessage}}

Parches de código: {{.Patches}}
`

	kindSummaryTemplateEN = `{{.Intro}}
Here are the {{.KindName}} items I want you to summarize:
{{range .Items}}{{.}}


{{end}}`

	kindSummaryTemplateES = `{{.Intro}}
Estos son los elementos de tipo {{.KindName}} que quiero que resumas:
{{range .Items}}{{.}}


{{end}}`

	rangeMessagesTemplateEN = `Please write a single short paragraph for a resume.

Your input will be git commit messages.
Do not simply list the commit messages.
Infer experience based on the text.
Please be a little humble and do not use many superlatives.

Here is a list of the commit messages:
{{range .Items}}- {{.}}
{{end}}`

	rangeMessagesTemplateES = `Escribí un único párrafo corto para un currículum.

Tu entrada serán mensajes de commits de git.
No te limites a listar los mensajes.
Inferí la experiencia a partir del texto.
Sé un poco humilde y no uses muchos superlativos.

Esta es la lista de mensajes de commits:
{{range .Items}}- {{.}}
{{end}}`

	rangePatchesTemplateEN = `Please write a single short paragraph for a resume.

Your input will be code patches from git commits.
Infer experience based on the text.
Please be a little humble and do not use many superlatives.

Here is a list of the code patches:
{{range .Items}}{{.}}
{{end}}`

	rangePatchesTemplateES = `Escribí un único párrafo corto para un currículum.

Tu entrada serán parches de código de commits de git.
Inferí la experiencia a partir del texto.
Sé un poco humilde y no uses muchos superlativos.

Esta es la lista de parches de código:
{{range .Items}}{{.}}
{{end}}`
)

var kindNamesES = map[models.ChangeKind]string{
	models.KindCommitMessages: "texto de mensajes de commit de git",
	models.KindPullRequests:   "texto de pull requests",
	models.KindCodePatches:    "ediciones de código en forma de parche diff",
}

func byLanguage(lang, en, es string) string {
	if lang == "es" {
		return es
	}
	return en
}

// BuildCommitSummaryPrompt asks for a short paragraph describing one commit from
// its message, its patches and the text of its pull requests.
func BuildCommitSummaryPrompt(lang string, record models.CommitRecord, pulls []models.PullRequestText) (string, error) {
	patches, err := formatFiles(record.PatchView())
	if err != nil {
		return "", err
	}
	if pulls == nil {
		pulls = []models.PullRequestText{}
	}
	pullText, err := formatJSON(pulls)
	if err != nil {
		return "", err
	}

	return RenderPrompt("commit_summary", byLanguage(lang, commitSummaryTemplateEN, commitSummaryTemplateES), PromptData{
		Intro:         byLanguage(lang, summaryIntroEN, summaryIntroES),
		PullRequests:  pullText,
		CommitMessage: record.Message,
		Patches:       patches,
	})
}

// BuildCommitReviewPrompt asks whether the commit message is truthful about its diff.
func BuildCommitReviewPrompt(lang string, record models.CommitRecord) (string, error) {
	patches, err := formatFiles(record.PatchView())
	if err != nil {
		return "", err
	}

	return RenderPrompt("commit_review", byLanguage(lang, commitReviewTemplateEN, commitReviewTemplateES), PromptData{
		CommitMessage: record.Message,
		Patches:       patches,
	})
}

// BuildKindSummaryPrompt asks for a summary of items that all share one kind.
func BuildKindSummaryPrompt(lang string, kind models.ChangeKind, items []string) (string, error) {
	name, ok := kindNamesES[kind]
	if !ok {
		return "", fmt.Errorf("unknown change kind %q", kind)
	}
	if lang != "es" {
		name = kind.Description()
	}

	return RenderPrompt("kind_summary", byLanguage(lang, kindSummaryTemplateEN, kindSummaryTemplateES), PromptData{
		Intro:    byLanguage(lang, summaryIntroEN, summaryIntroES),
		KindName: name,
		Items:    items,
	})
}

// BuildRangeSummaryPrompt asks for a resume-style paragraph from commit
// messages or formatted patches.
func BuildRangeSummaryPrompt(lang string, source models.RangeSource, items []string) (string, error) {
	var tmpl string
	switch source {
	case models.SourceMessages:
		tmpl = byLanguage(lang, rangeMessagesTemplateEN, rangeMessagesTemplateES)
	case models.SourcePatches:
		tmpl = byLanguage(lang, rangePatchesTemplateEN, rangePatchesTemplateES)
	default:
		return "", fmt.Errorf("unknown range source %q", source)
	}

	return RenderPrompt("range_summary", tmpl, PromptData{Items: items})
}

// recordJSON mirrors the serialized commit schema without the custom
// marshaler so the output can be indented.
type recordJSON struct {
	Message string              `json:"message"`
	Stats   *models.CommitStats `json:"stats,omitempty"`
	Files   []models.FileChange `json:"files"`
}

// FormatRecord renders a commit record, usually one of its views, as indented JSON.
func FormatRecord(record models.CommitRecord) (string, error) {
	files := record.Files
	if files == nil {
		files = []models.FileChange{}
	}
	return formatJSON(recordJSON{
		Message: record.Message,
		Stats:   record.Stats,
		Files:   files,
	})
}

// FormatPullRequests renders the pull request texts of one commit.
func FormatPullRequests(pulls []models.PullRequestText) (string, error) {
	if pulls == nil {
		pulls = []models.PullRequestText{}
	}
	return formatJSON(pulls)
}

func formatFiles(record models.CommitRecord) (string, error) {
	files := record.Files
	if files == nil {
		files = []models.FileChange{}
	}
	return formatJSON(files)
}

func formatJSON(v any) (string, error) {
	data, err := promptJSON.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error formatting prompt data: %w", err)
	}
	return string(data), nil
}
