package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestParseContentTypeRoundTrip(t *testing.T) {
	for _, tag := range []string{"mail_client", "mail_partenariat", "mail_relance", "linkedin_message", "linkedin_post"} {
		assert.Equal(t, tag, ParseContentType(tag).String())
	}
}

func TestParseContentTypeUnknownFallsBackToClientMail(t *testing.T) {
	assert.Equal(t, ContentMailClient, ParseContentType(""))
	assert.Equal(t, ContentMailClient, ParseContentType("newsletter"))
}

func TestPoleAndRoleLabels(t *testing.T) {
	assert.Equal(t, "Trésorerie", PoleLabel("tresorerie"))
	assert.Equal(t, "Responsable", RoleLabel("responsable"))
	// Unmapped codes pass through untouched.
	assert.Equal(t, "pole_inconnu", PoleLabel("pole_inconnu"))
	assert.Equal(t, "stagiaire", RoleLabel("stagiaire"))
}

func TestComposePromptIsDeterministic(t *testing.T) {
	input := PromptInput{
		ContentType: ContentMailClient,
		Recipients:  []RecipientInfo{{FullName: "Jane Doe", Company: strPtr("Acme")}},
		Template:    TemplateInfo{Title: "Premier contact", Context: strPtr("Ton cordial")},
		Context:     "Salon Pro&Mer 2025",
	}
	assert.Equal(t, ComposePrompt(input), ComposePrompt(input))
}

func TestComposePromptClientMail(t *testing.T) {
	prompt := ComposePrompt(PromptInput{
		ContentType: ContentMailClient,
		Recipients: []RecipientInfo{{
			FullName: "Jane Doe",
			Company:  strPtr("Acme"),
			JobTitle: strPtr("CTO"),
			Email:    strPtr("jane@acme.fr"),
		}},
		Template: TemplateInfo{Title: "Premier contact", Context: strPtr("Ton cordial")},
	})

	assert.Contains(t, prompt, "**Contact destinataire :**")
	assert.Contains(t, prompt, "- Nom : Jane Doe")
	assert.Contains(t, prompt, "- Entreprise : Acme")
	assert.Contains(t, prompt, "**Template : Premier contact**")
	assert.Contains(t, prompt, "Instructions du template : Ton cordial")
	assert.Contains(t, prompt, "Aucune offre sélectionnée.")
	assert.Contains(t, prompt, "Aucun contexte supplémentaire.")
	assert.Contains(t, prompt, `signature "Capisen"`)
	// The persona lives in the system prompt, not the user turn.
	assert.NotContains(t, prompt, "Junior-Entreprise")
}

func TestComposePromptMissingContactFieldsUseDefaults(t *testing.T) {
	prompt := ComposePrompt(PromptInput{
		ContentType: ContentMailClient,
		Recipients:  []RecipientInfo{{FullName: "Jean Petit"}},
		Template:    TemplateInfo{Title: "Relance devis"},
	})
	assert.Contains(t, prompt, "- Entreprise : Non renseignée")
	assert.Contains(t, prompt, "- Poste : Non renseigné")
	assert.Contains(t, prompt, "- Email : Non renseigné")
}

func TestComposePromptMultipleRecipients(t *testing.T) {
	prompt := ComposePrompt(PromptInput{
		ContentType: ContentMailPartenariat,
		Recipients: []RecipientInfo{
			{FullName: "Jane Doe", JobTitle: strPtr("CTO"), Company: strPtr("Acme")},
			{FullName: "Marc Durand"},
		},
		Template: TemplateInfo{Title: "Partenariat école"},
	})
	assert.Contains(t, prompt, "**Contacts destinataires (2 personnes) :**")
	assert.Contains(t, prompt, "- Jane Doe (CTO, Acme)")
	assert.Contains(t, prompt, "- Marc Durand")
	assert.Contains(t, prompt, "Adresse le texte à tous les destinataires")
	assert.NotContains(t, prompt, "**Contact destinataire :**")
}

func TestComposePromptLinkedinPostOmitsRecipients(t *testing.T) {
	prompt := ComposePrompt(PromptInput{
		ContentType: ContentLinkedinPost,
		Recipients:  []RecipientInfo{{FullName: "Jane Doe"}},
		Template:    TemplateInfo{Title: "Post recrutement"},
	})
	assert.NotContains(t, prompt, "Jane Doe")
	assert.Contains(t, prompt, "Rédige le post LinkedIn")
}

func TestComposePromptRelanceInstructions(t *testing.T) {
	prompt := ComposePrompt(PromptInput{
		ContentType: ContentMailRelance,
		Recipients:  []RecipientInfo{{FullName: "Jane Doe"}},
		Template:    TemplateInfo{Title: "Relance"},
	})
	assert.Contains(t, prompt, "Rédige le mail de relance")
	assert.Contains(t, prompt, "sans s'excuser")
}

func TestComposePromptSenderBlock(t *testing.T) {
	prompt := ComposePrompt(PromptInput{
		ContentType: ContentMailClient,
		Recipients:  []RecipientInfo{{FullName: "Jane Doe"}},
		Template:    TemplateInfo{Title: "Premier contact"},
		Sender:      &SenderInfo{FullName: "Luc Morvan", Role: "responsable", Pole: "tresorerie"},
	})
	require.True(t, strings.HasPrefix(prompt, "**Expéditeur (toi) :**"))
	assert.Contains(t, prompt, "- Nom : Luc Morvan")
	assert.Contains(t, prompt, "- Rôle au sein de Capisen : Responsable")
	assert.Contains(t, prompt, "- Pôle : Trésorerie")
}

func TestComposePromptOffresAndMentions(t *testing.T) {
	prompt := ComposePrompt(PromptInput{
		ContentType: ContentMailClient,
		Recipients:  []RecipientInfo{{FullName: "Jane Doe"}},
		Template:    TemplateInfo{Title: "Premier contact"},
		Offres: []OffreInfo{
			{Title: "Site vitrine", Description: strPtr("Développement web clé en main")},
			{Title: "Audit SEO"},
		},
		Mentioned: []RecipientInfo{
			{FullName: "Paul Riou", JobTitle: strPtr("Directeur"), Company: strPtr("Brest Métropole")},
		},
	})
	assert.Contains(t, prompt, "- Site vitrine : Développement web clé en main")
	assert.Contains(t, prompt, "- Audit SEO")
	assert.Contains(t, prompt, "**Profils des personnes mentionnées :**")
	assert.Contains(t, prompt, "- Paul Riou, Poste : Directeur, Entreprise : Brest Métropole")
	assert.Contains(t, prompt, "(Utilise ces informations si pertinentes.)")
}

func TestComposePromptOmitsMentionBlockWhenEmpty(t *testing.T) {
	prompt := ComposePrompt(PromptInput{
		ContentType: ContentMailClient,
		Recipients:  []RecipientInfo{{FullName: "Jane Doe"}},
		Template:    TemplateInfo{Title: "Premier contact"},
	})
	assert.NotContains(t, prompt, "Profils des personnes mentionnées")
}
