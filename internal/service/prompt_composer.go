package service

import (
	"fmt"
	"strings"
)

// ContentType is the closed set of generation targets. Adding a value
// means extending the switches below; the compiler and the exhaustive
// default keep unknown tags from being silently ignored.
type ContentType int

const (
	ContentMailClient ContentType = iota
	ContentMailPartenariat
	ContentMailRelance
	ContentLinkedinMessage
	ContentLinkedinPost
)

// ParseContentType maps a wire tag to its variant. Unknown or empty tags
// fall back to the client-email type.
func ParseContentType(tag string) ContentType {
	switch tag {
	case "mail_partenariat":
		return ContentMailPartenariat
	case "mail_relance":
		return ContentMailRelance
	case "linkedin_message":
		return ContentLinkedinMessage
	case "linkedin_post":
		return ContentLinkedinPost
	default:
		return ContentMailClient
	}
}

func (t ContentType) String() string {
	switch t {
	case ContentMailPartenariat:
		return "mail_partenariat"
	case ContentMailRelance:
		return "mail_relance"
	case ContentLinkedinMessage:
		return "linkedin_message"
	case ContentLinkedinPost:
		return "linkedin_post"
	default:
		return "mail_client"
	}
}

// RecipientInfo is a rendered snapshot of a contact at composition time.
type RecipientInfo struct {
	FullName string
	Company  *string
	JobTitle *string
	Email    *string
	Notes    *string
}

type TemplateInfo struct {
	Title   string
	Context *string
}

type OffreInfo struct {
	Title       string
	Description *string
}

type SenderInfo struct {
	FullName string
	Role     string
	Pole     string
}

// PromptInput is the normalized form state for one initial generation.
// Recipients may be empty only for the LinkedIn post type; the
// conversation manager validates that before composing.
type PromptInput struct {
	ContentType ContentType
	Recipients  []RecipientInfo
	Template    TemplateInfo
	Offres      []OffreInfo
	Context     string
	Mentioned   []RecipientInfo
	Sender      *SenderInfo
}

// SystemPrompt is the fixed persona and tone rules sent with every
// completion request.
const SystemPrompt = `Tu es l'assistant de rédaction de Capisen, la Junior-Entreprise de l'ISEN Brest.

RÈGLES IMPÉRATIVES — à respecter absolument :
- Sois direct, concis et naturel. Zéro phrase de remplissage.
- INTERDIT d'utiliser ces formules ou leurs variantes : "J'espère que ce message vous trouve en bonne santé", "Je me permets de vous contacter", "N'hésitez pas à revenir vers moi", "Dans l'espoir d'une suite favorable", "Restant à votre disposition", "En espérant une réponse favorable", "Je me tiens à votre disposition", "N'hésitez pas à me contacter".
- Copie le style et la structure du template fourni — c'est ta référence principale pour le ton et la formulation.
- Chaque texte a un seul objectif clair. Va droit au but dès les premières lignes.
- Si on te demande de modifier un texte existant, fournis directement le texte corrigé et complet, sans explication ni commentaire autour.`

var poleLabels = map[string]string{
	"secretariat":   "Secrétariat",
	"tresorerie":    "Trésorerie",
	"rh_event":      "RH & Événements",
	"communication": "Communication",
	"etude":         "Étude",
	"qualite":       "Qualité",
	"presidence":    "Présidence",
}

var roleLabels = map[string]string{
	"normal":      "Membre",
	"responsable": "Responsable",
	"presidence":  "Présidence",
}

// PoleLabel translates a pole code to its display label, falling back to
// the raw code when unmapped.
func PoleLabel(code string) string {
	if label, ok := poleLabels[code]; ok {
		return label
	}
	return code
}

func RoleLabel(code string) string {
	if label, ok := roleLabels[code]; ok {
		return label
	}
	return code
}

// generationInstructions returns the fixed closing instruction block for
// a content type.
func generationInstructions(t ContentType) string {
	switch t {
	case ContentMailPartenariat:
		return `Rédige le mail avec :
1. L'objet du mail (préfixé par "Objet : ")
2. Une ouverture directe sur la raison du contact
3. Le corps : ce qu'on propose, pourquoi ça a du sens, quelle suite on suggère
4. Une clôture courte et une signature "Capisen"`
	case ContentMailRelance:
		return `Rédige le mail de relance avec :
1. L'objet du mail (préfixé par "Objet : ")
2. Une phrase de contexte rapide (rappel du mail précédent, sans s'excuser)
3. La relance directe : qu'est-ce qu'on attend comme suite ?
4. Une clôture courte et une signature "Capisen"`
	case ContentLinkedinMessage:
		return `Rédige le message LinkedIn avec :
- Pas d'objet, pas de formule d'ouverture pompeuse
- 3 à 5 phrases maximum, ton direct et humain
- Un appel à l'action clair en fin de message`
	case ContentLinkedinPost:
		return `Rédige le post LinkedIn avec :
- Une accroche forte en première ligne (pas de question banale type "Vous êtes-vous déjà demandé ?")
- Corps aéré avec retours à la ligne, 150 à 250 mots max
- Un appel à l'action ou une question ouverte en conclusion
- Pas de formule d'ouverture, pas de signature formelle`
	case ContentMailClient:
		fallthrough
	default:
		return `Rédige le mail avec :
1. L'objet du mail (préfixé par "Objet : ")
2. Une ouverture directe — pas de formule vide
3. Le corps : clair, concis, un seul objectif par mail
4. Une clôture courte et une signature "Capisen"`
	}
}

// ComposePrompt renders the structured form state into the single
// natural-language instruction that opens a transcript. Pure: identical
// inputs always yield the identical string.
func ComposePrompt(in PromptInput) string {
	var b strings.Builder

	b.WriteString(senderBlock(in.Sender))
	b.WriteString(recipientBlock(in.ContentType, in.Recipients))

	b.WriteString(fmt.Sprintf("**Template : %s**\n", in.Template.Title))
	if in.Template.Context != nil && *in.Template.Context != "" {
		b.WriteString(fmt.Sprintf("Instructions du template : %s\n", *in.Template.Context))
	}

	b.WriteString("\n**Offres / Prestations à mettre en avant :**\n")
	b.WriteString(offresBlock(in.Offres))

	b.WriteString("\n\n**Contexte supplémentaire :**\n")
	if in.Context != "" {
		b.WriteString(in.Context)
	} else {
		b.WriteString("Aucun contexte supplémentaire.")
	}
	b.WriteString("\n")

	if mentioned := mentionedBlock(in.Mentioned); mentioned != "" {
		b.WriteString("\n**Profils des personnes mentionnées :**\n")
		b.WriteString(mentioned)
		b.WriteString("\n(Utilise ces informations si pertinentes.)\n")
	}

	b.WriteString(generationInstructions(in.ContentType))
	return b.String()
}

func senderBlock(sender *SenderInfo) string {
	if sender == nil {
		return ""
	}
	return fmt.Sprintf(`**Expéditeur (toi) :**
- Nom : %s
- Rôle au sein de Capisen : %s
- Pôle : %s
Signe le texte avec ton prénom ou ton nom complet selon le niveau de formalité.

`, sender.FullName, RoleLabel(sender.Role), PoleLabel(sender.Pole))
}

func recipientBlock(t ContentType, recipients []RecipientInfo) string {
	if t == ContentLinkedinPost || len(recipients) == 0 {
		return ""
	}

	if len(recipients) == 1 {
		c := recipients[0]
		block := fmt.Sprintf(`**Contact destinataire :**
- Nom : %s
- Entreprise : %s
- Poste : %s
- Email : %s`,
			c.FullName,
			orDefault(c.Company, "Non renseignée"),
			orDefault(c.JobTitle, "Non renseigné"),
			orDefault(c.Email, "Non renseigné"))
		if c.Notes != nil && *c.Notes != "" {
			block += fmt.Sprintf("\n- Notes : %s", *c.Notes)
		}
		return block + "\n\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Contacts destinataires (%d personnes) :**\n", len(recipients))
	for i, c := range recipients {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + c.FullName)
		var details []string
		if c.JobTitle != nil && *c.JobTitle != "" {
			details = append(details, *c.JobTitle)
		}
		if c.Company != nil && *c.Company != "" {
			details = append(details, *c.Company)
		}
		if len(details) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(details, ", "))
		}
	}
	b.WriteString("\nAdresse le texte à tous les destinataires de façon appropriée.\n\n")
	return b.String()
}

func offresBlock(offres []OffreInfo) string {
	if len(offres) == 0 {
		return "Aucune offre sélectionnée."
	}
	lines := make([]string, 0, len(offres))
	for _, o := range offres {
		line := "- " + o.Title
		if o.Description != nil && *o.Description != "" {
			line += " : " + *o.Description
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func mentionedBlock(mentioned []RecipientInfo) string {
	if len(mentioned) == 0 {
		return ""
	}
	lines := make([]string, 0, len(mentioned))
	for _, c := range mentioned {
		parts := []string{"- " + c.FullName}
		if c.JobTitle != nil && *c.JobTitle != "" {
			parts = append(parts, "Poste : "+*c.JobTitle)
		}
		if c.Company != nil && *c.Company != "" {
			parts = append(parts, "Entreprise : "+*c.Company)
		}
		if c.Email != nil && *c.Email != "" {
			parts = append(parts, "Email : "+*c.Email)
		}
		lines = append(lines, strings.Join(parts, ", "))
	}
	return strings.Join(lines, "\n")
}

func orDefault(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
