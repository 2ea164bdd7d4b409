package domain

// Credential é o material de acesso resolvido para uma execução de coleta.
// Não é persistido nem reaproveitado entre jobs.
type Credential struct {
	Platform Platform

	// OAuth (Google, Meta)
	AccessToken string

	// Google
	DeveloperToken  string
	CustomerID      string
	LoginCustomerID string

	// Meta
	AdAccountID string

	// Naver (chave da organização + cliente do anunciante)
	APIKey          string
	SecretKey       string
	NaverCustomerID string
}
