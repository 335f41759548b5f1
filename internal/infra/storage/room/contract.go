package room

import "github.com/m04kA/SMC-RoomBooking/pkg/dbmetrics"

// DBExecutor интерфейс для выполнения запросов (*sql.DB, *sql.Tx или обёртки dbmetrics)
type DBExecutor = dbmetrics.DBExecutor
