package chatbot

import "eduPulse/domain"

// Response types.
const (
	ResponseText     = "text"
	ResponsePriority = "priority"
)

const priorityPrefix = "Je comprends que c'est urgent, je m'en occupe tout de suite. "

type responseTemplate struct {
	text    string
	data    map[string]any
	actions []string
}

// templateFor is a closed switch over the intent catalog. Unknown intents
// get the generic fallback with no actions.
func templateFor(intent string) responseTemplate {
	switch intent {
	case domain.IntentQuestionProgress:
		return responseTemplate{
			text:    "Voici où vous en êtes dans vos cours.",
			data:    map[string]any{"show_progress": true},
			actions: []string{"Voir ma progression", "Mes certificats"},
		}
	case domain.IntentNeedHelp:
		return responseTemplate{
			text:    "Je suis là pour vous aider. Pouvez-vous préciser votre question ?",
			actions: []string{"Contacter le support", "Consulter la FAQ"},
		}
	case domain.IntentCourseRecommendation:
		return responseTemplate{
			text:    "Voici des cours qui pourraient vous intéresser.",
			data:    map[string]any{"show_recommendations": true},
			actions: []string{"Voir les recommandations"},
		}
	case domain.IntentAchievementQuery:
		return responseTemplate{
			text:    "Voici vos badges et certificats obtenus.",
			data:    map[string]any{"show_achievements": true},
			actions: []string{"Mes badges", "Mes certificats"},
		}
	case domain.IntentSchedulePlanning:
		return responseTemplate{
			text:    "Organisons votre planning d'apprentissage.",
			data:    map[string]any{"show_schedule": true},
			actions: []string{"Planifier ma semaine"},
		}
	case domain.IntentTechnicalIssue:
		return responseTemplate{
			text:    "Désolé pour ce souci technique. Décrivez le problème et nous allons le résoudre.",
			actions: []string{"Signaler le problème", "Contacter le support"},
		}
	default:
		return responseTemplate{
			text: "Je n'ai pas bien compris votre demande. Pouvez-vous reformuler ?",
		}
	}
}

// BuildResponse turns an analyzed context into the templated reply.
// High urgency prefixes an empathetic sentence and marks the response
// as priority.
func BuildResponse(c domain.Context) domain.ChatResponse {
	tpl := templateFor(c.Intent.Intent)

	resp := domain.ChatResponse{
		Text:       tpl.text,
		Type:       ResponseText,
		Data:       tpl.data,
		Actions:    tpl.actions,
		Confidence: float64(c.Intent.Score) / 10,
	}

	if c.Urgency == domain.UrgencyHigh {
		resp.Text = priorityPrefix + resp.Text
		resp.Type = ResponsePriority
	}

	return resp
}
