package workflow

// 利用者に表示する進捗メッセージと通知です。
const (
	MsgGenerating = "Nous créons un livre magique pour %s..."
	MsgCoverDone  = "Couverture générée ! Création des pages..."
	MsgPageDone   = "Page %d/%d générée..."

	NoticeGenerationFailed   = "Une erreur est survenue lors de la génération. Veuillez réessayer."
	NoticeRegenerationFailed = "Erreur lors de la régénération."
	NoticeSaveFailed         = "Une erreur est survenue lors de l'enregistrement du livre."

	ConfirmDelete = "Voulez-vous vraiment supprimer ce livre ?"
)
