package core

var (
	_ ConfigProvider  = (*CfgxConfigProvider)(nil)
	_ OptionsResolver = GoOptionsResolver{}
	_ RawConfigLoader = staticRawConfigLoader{}

	_ SheetEvent = ShippingMethodSelectedEvent{}
	_ SheetEvent = ShippingContactSelectedEvent{}
	_ SheetEvent = PaymentMethodCreatedEvent{}
	_ SheetEvent = SheetFinishedEvent{}
)
