package produce

import amqp "github.com/rabbitmq/amqp091-go"

type Produce struct {
	TributeService *TributeService
}

var produceInstance *Produce

func InitProduce(channel *amqp.Channel) *Produce {
	if produceInstance != nil {
		return produceInstance
	}

	tributeService := InitTributeService(channel)
	if tributeService == nil {
		panic("Failed to initialize Tribute service")
	}

	produceInstance = &Produce{
		TributeService: tributeService,
	}

	return produceInstance
}

func GetProduce() *Produce {
	if produceInstance == nil {
		panic("Produce not initialized. Call InitProduce() first.")
	}
	return produceInstance
}
