package booking

import (
	"github.com/salabelleza/SLB-BookingService/pkg/dbmetrics"
)

// DBExecutor соединение с БД, через которое репозиторий выполняет запросы.
// Реализуется *sql.DB и обёрткой *dbmetrics.DB; внутри транзакции
// executor достаётся из контекста через dbmetrics.GetExecutor.
type DBExecutor = dbmetrics.DBExecutor
