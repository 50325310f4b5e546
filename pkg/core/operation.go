package core

// Operation identifies a logical exchange action independent of any
// exchange's endpoint layout. The dispatcher passes it to the version gate
// before a request is signed.
type Operation int

// Operation constants define the logical actions the client can dispatch.
const (
	// OpGetTicker retrieves current market ticker data for a pair.
	OpGetTicker Operation = iota
	// OpGetOrderBook retrieves the current order book depth.
	OpGetOrderBook
	// OpGetTrades retrieves recent trades for a pair.
	OpGetTrades
	// OpGetCandles retrieves candlestick/OHLCV data.
	OpGetCandles
	// OpGetBalance retrieves account wallet balances.
	OpGetBalance
	// OpPlaceOrder submits a new order to the exchange.
	OpPlaceOrder
	// OpCancelOrder cancels an existing order.
	OpCancelOrder
	// OpGetOrder retrieves the status of a specific order.
	OpGetOrder
	// OpGetOpenOrders retrieves all open orders.
	OpGetOpenOrders
	// OpGetOrderHistory retrieves historical orders.
	OpGetOrderHistory
	// OpWithdraw requests a withdrawal from the account.
	OpWithdraw
	// OpDeposit retrieves deposit addresses or history.
	OpDeposit
)

// String returns the string representation of the operation.
func (o Operation) String() string {
	return [...]string{
		"GET_TICKER",
		"GET_ORDER_BOOK",
		"GET_TRADES",
		"GET_CANDLES",
		"GET_BALANCE",
		"PLACE_ORDER",
		"CANCEL_ORDER",
		"GET_ORDER",
		"GET_OPEN_ORDERS",
		"GET_ORDER_HISTORY",
		"WITHDRAW",
		"DEPOSIT",
	}[o]
}
