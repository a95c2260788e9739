package tnda

import (
	"context"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/tnda/implcaps/factory"
)

func (z *TNDA) providerLoad() {
	ctx, end := z.logger.Segment(z.ctx, "Loading persistence.")
	defer end()

	for _, name := range z.categoryListFromPersistence() {
		z.providerLoadCategory(ctx, name)
	}
}

func (z *TNDA) providerLoadCategory(pctx context.Context, name string) {
	ctx, end := z.logger.Segment(pctx, "Loading category data.", logwrap.Datum("category", name))
	defer end()

	c, _ := z.createCategory(name)

	for _, i := range z.deviceListFromPersistence(name) {
		z.providerLoadDevice(ctx, c, i)
	}
}

func (z *TNDA) providerLoadDevice(pctx context.Context, c *category, i ObjectIdentifier) {
	ctx, end := z.logger.Segment(pctx, "Loading device data.", logwrap.Datum("device", i.String()))
	defer end()

	d := z.createSpecificDevice(c, i.Key)

	capSection := z.sectionForDevice(i).Section("capability")

	for _, cName := range capSection.SectionKeys() {
		cctx, cend := z.logger.Segment(ctx, "Loading capability data.", logwrap.Datum("capability", cName))

		cSection := capSection.Section(cName)

		if capImpl, ok := cSection.String("implementation"); ok {
			if capI := factory.Create(capImpl, z.ti); capI == nil {
				z.logger.LogError(cctx, "Could not find capability implementation.", logwrap.Datum("implementation", capImpl))
			} else {
				z.logger.LogInfo(cctx, "Constructed capability implementation.", logwrap.Datum("implementation", capImpl))
				capI.Init(d, cSection.Section("data"))
				attached, err := capI.Load(cctx)

				if err != nil {
					z.logger.LogError(cctx, "Error while loading from persistence.", logwrap.Err(err), logwrap.Datum("implementation", capImpl))
				}

				if attached {
					z.attachCapabilityToDevice(d, capI)
					z.logger.LogInfo(cctx, "Attached capability from persistence.", logwrap.Datum("implementation", capImpl))
				} else {
					z.logger.LogWarn(cctx, "Rejected capability attach from persistence.", logwrap.Datum("implementation", capImpl))
				}
			}
		}

		cend()
	}
}
