package types

type RefundRecord struct {
	ID               int64  `json:"id"`
	Reference        string `json:"reference"`
	TransactionHash  string `json:"transactionHash"`
	RecipientAddress string `json:"recipientAddress"`
	Amount           string `json:"amount"`
	Token            string `json:"token"`
	Chain            string `json:"chain"`
	Reason           string `json:"reason"`
	Status           string `json:"status"`
	SettlementTxHash string `json:"settlementTxHash,omitempty"`
	FailureReason    string `json:"failureReason,omitempty"`
	CreatedAt        string `json:"createdAt"`
}
