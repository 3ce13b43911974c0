package store

import (
	"time"

	"github.com/emilianohg/launchtracker/internal/models"
)

type seedLaunch struct {
	name, shop, status, priority string
	start, end                   string
	notes                        string
	attachments                  []string
	done                         []string
	todo                         []string
}

var seedData = []seedLaunch{
	{
		name: "Campagna Primavera 2026", shop: "shop-italia", status: "in-corso", priority: "alta",
		start: "2026-02-20", end: "2026-03-15",
		notes:       "Campagna stagionale con focus su nuova collezione primavera/estate. Coinvolge tutti i canali digitali.",
		attachments: []string{"brief-primavera.pdf", "moodboard-v2.png", "palette-colori.ai"},
		done:        []string{"Briefing creativo con il team", "Moodboard e palette colori"},
		todo:        []string{"Bozza banner hero", "Adattamenti formati social", "Revisione finale con cliente"},
	},
	{
		name: "Promo Soldes Hiver", shop: "shop-francia", status: "completato", priority: "media",
		start: "2025-12-20", end: "2026-01-10",
		notes:       "Promozione saldi invernali per mercato francese. Creativita' adattata al tone of voice locale.",
		attachments: []string{"banner-soldes.psd", "report-performance.pdf"},
		done:        []string{"Traduzione copy in francese", "Creazione banner promo", "Setup campagna ads"},
	},
	{
		name: "Lancio Prodotto Premium", shop: "shop-germania", status: "in-revisione", priority: "alta",
		start: "2026-03-01", end: "2026-04-01",
		notes:       "Lancio nuova linea premium per il mercato tedesco. Richieste creative di alto livello con shooting fotografico.",
		attachments: []string{"concept-premium.pdf", "assets-v1.zip", "shooting-brief.docx"},
		done:        []string{"Concept creativo", "Shooting prodotto", "Post-produzione foto"},
		todo:        []string{"Landing page design", "Approvazione cliente finale"},
	},
	{
		name: "Summer Vibes Campaign", shop: "shop-uk", status: "da-fare", priority: "bassa",
		start: "2026-05-15", end: "2026-06-01",
		notes: "Campagna estiva per il mercato UK. Tono fresco e giovane, target Gen Z.",
		todo:  []string{"Ricerca trend estivi", "Selezione influencer UK"},
	},
	{
		name: "Rebranding Social Media", shop: "shop-spagna", status: "in-corso", priority: "media",
		start: "2026-02-15", end: "2026-03-20",
		notes:       "Aggiornamento visual identity per tutti i canali social del mercato spagnolo. Nuovo logo e guidelines.",
		attachments: []string{"guidelines-social.pdf", "logo-new-v3.svg"},
		done:        []string{"Audit canali attuali", "Nuova palette e tipografia"},
		todo:        []string{"Template post Instagram", "Template stories", "Guida stile per il team"},
	},
	{
		name: "Black Friday Anticipato", shop: "shop-italia", status: "in-pausa", priority: "alta",
		start: "2026-11-01", end: "2026-11-20",
		notes:       "Preparazione anticipata materiali Black Friday. In attesa approvazione budget dal marketing.",
		attachments: []string{"bf-strategy.pdf", "creative-deck.pptx", "budget-proposal.xlsx"},
		done:        []string{"Strategia sconti e offerte"},
		todo:        []string{"Bozza email marketing", "Creativita' banner sito", "Piano ads Facebook/Google"},
	},
	{
		name: "Newsletter Pasqua", shop: "shop-francia", status: "da-fare", priority: "bassa",
		start: "2026-03-20", end: "2026-04-05",
		notes: "Template newsletter per promozioni pasquali. Design minimal ed elegante, tema floreale.",
		todo:  []string{"Selezione template base", "Copywriting promo", "Test A/B subject lines"},
	},
	{
		name: "Video Lancio Collezione Autunno", shop: "shop-italia", status: "in-corso", priority: "alta",
		start: "2026-02-10", end: "2026-03-05",
		notes:       "Video hero 30s + 6 cutdown per social. Produzione interna con agenzia esterna per post-produzione.",
		attachments: []string{"script-video-v2.pdf", "storyboard.pdf", "shot-list.xlsx"},
		done:        []string{"Scrittura script", "Storyboard", "Giornata di shooting"},
		todo:        []string{"Montaggio bozza", "Color grading e sound design", "Cutdown per social"},
	},
	{
		name: "Catalogo Digitale Estate", shop: "shop-germania", status: "da-fare", priority: "media",
		start: "2026-04-01", end: "2026-04-30",
		notes:       "Catalogo digitale interattivo per la collezione estiva. Formato PDF sfogliabile + versione web.",
		attachments: []string{"catalogo-brief.pdf"},
		todo:        []string{"Raccolta prodotti e foto", "Layout impaginazione", "Copywriting descrizioni DE", "Versione interattiva web"},
	},
	{
		name: "Restyling Homepage UK", shop: "shop-uk", status: "in-revisione", priority: "media",
		start: "2026-02-01", end: "2026-02-28",
		notes:       "Redesign completo homepage per il mercato UK. A/B test con versione attuale previsto a fine mese.",
		attachments: []string{"wireframe-hp.fig", "mockup-desktop.png", "mockup-mobile.png"},
		done:        []string{"Wireframe UX", "Mockup desktop", "Mockup mobile responsive"},
		todo:        []string{"Review con stakeholder UK", "Implementazione dev"},
	},
	{
		name: "Campagna San Valentino", shop: "shop-spagna", status: "completato", priority: "alta",
		start: "2026-01-20", end: "2026-02-14",
		notes:       "Campagna speciale San Valentino per il mercato spagnolo. Focus su gioielli e accessori regalo.",
		attachments: []string{"creativita-sv.psd", "risultati-campagna.pdf"},
		done:        []string{`Concept "Love Edition"`, "Shooting prodotti regalo", "Email marketing sequence", "Social ads setup", "Report performance"},
	},
	{
		name: "Packaging Edizione Limitata", shop: "shop-francia", status: "in-corso", priority: "alta",
		start: "2026-02-18", end: "2026-03-10",
		notes:       "Design packaging per edizione limitata primavera. Materiali eco-sostenibili, stampa a caldo oro.",
		attachments: []string{"packaging-concept.ai", "materiali-eco.pdf", "preventivo-stampa.pdf"},
		done:        []string{"Concept design packaging", "Selezione materiali eco"},
		todo:        []string{"Prototipo 3D", "Test stampa campione", "Ordine produzione finale"},
	},
	{
		name: "Lookbook Digitale Natale", shop: "shop-uk", status: "da-fare", priority: "media",
		start: "2026-11-25", end: "2026-12-15",
		notes:       "Lookbook natalizio per il mercato UK. Shooting in studio e versione sfogliabile per newsletter.",
		attachments: []string{"lookbook-brief.pdf"},
		todo:        []string{"Selezione capi", "Shooting in studio", "Impaginazione lookbook"},
	},
}

// SeedLaunches returns the demo collection used when nothing usable is persisted.
func SeedLaunches(now time.Time) []models.Launch {
	out := make([]models.Launch, 0, len(seedData))
	for _, s := range seedData {
		l := models.Launch{
			ID:           newLaunchID(now),
			Name:         s.name,
			Shop:         s.shop,
			Status:       s.status,
			Priority:     s.priority,
			StartDate:    s.start,
			EndDate:      s.end,
			Notes:        s.notes,
			Attachments:  append([]string{}, s.attachments...),
			Subtasks:     []models.SubTask{},
			CustomFields: map[string]models.FieldValue{},
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		for _, name := range s.done {
			l.Subtasks = append(l.Subtasks, seedSubtask(now, name, true))
		}
		for _, name := range s.todo {
			l.Subtasks = append(l.Subtasks, seedSubtask(now, name, false))
		}
		out = append(out, l)
	}
	return out
}

func seedSubtask(now time.Time, name string, completed bool) models.SubTask {
	return models.SubTask{
		ID:        newSubtaskID(now),
		Name:      name,
		Completed: completed,
		CreatedAt: now,
		Fields:    map[string]string{},
	}
}
