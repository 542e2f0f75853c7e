package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CrowTag struct{}

var CrowTagComponent = NewComponent[CrowTag]()

type FeatherTag struct{}

var FeatherTagComponent = NewComponent[FeatherTag]()

type AttackTag struct{}

var AttackTagComponent = NewComponent[AttackTag]()
