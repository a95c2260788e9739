package tnda

import (
	"github.com/shimmeringbee/persistence"
)

func (z *TNDA) sectionForCategory(name string) persistence.Section {
	return z.section.Section("category", name)
}

func (z *TNDA) categoryListFromPersistence() []string {
	return z.section.Section("category").SectionKeys()
}

func (z *TNDA) sectionRemoveDevice(i ObjectIdentifier) bool {
	return z.sectionForCategory(i.Category).Section("device").SectionDelete(i.Key)
}

func (z *TNDA) sectionForDevice(i ObjectIdentifier) persistence.Section {
	return z.sectionForCategory(i.Category).Section("device", i.Key)
}

func (z *TNDA) deviceListFromPersistence(name string) []ObjectIdentifier {
	var deviceList []ObjectIdentifier

	for _, k := range z.sectionForCategory(name).Section("device").SectionKeys() {
		deviceList = append(deviceList, ObjectIdentifier{Category: name, Key: k})
	}

	return deviceList
}
