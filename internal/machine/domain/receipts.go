package domain

// Receipts are transient outcome values, one per engine operation.
// They are never persisted; the ReceiptID only correlates logs with
// responses.

type DepositReceipt struct {
	ReceiptID  string `json:"receiptId"`
	NewBalance int    `json:"currentDeposit"`
}

type PurchaseReceipt struct {
	ReceiptID         string  `json:"receiptId"`
	TotalSpent        int     `json:"totalSpent"`
	QuantityPurchased int     `json:"amountPurchased"`
	Change            Change  `json:"change"`
	Product           Product `json:"product"`
}

type ResetReceipt struct {
	ReceiptID      string `json:"receiptId"`
	ReturnedAmount int    `json:"returnedAmount"`
	Change         Change `json:"change"`
}
