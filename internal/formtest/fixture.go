package formtest

// LegacyHTML mirrors the legacy system's login, report and entry controls
// under the default form spec.
const LegacyHTML = `<!DOCTYPE html>
<html>
<body>
  <form id="login">
    <input type="text" name="txtUsuario">
    <input type="password" name="txtPass">
    <button data-xpath="/html/body/form/div[4]/button">Ingresar</button>
  </form>
  <aside>
    <a data-xpath="/html/body/aside/div/ul/li[8]/a" href="#reportes">Reportes</a>
  </aside>
  <table id="rango">
    <tr><td><input type="date" name="txtFechaI"></td></tr>
    <tr><td><input type="date" name="txtFechaF"></td></tr>
    <tr><td><input type="button" data-xpath="/html/body/table/tbody/tr[3]/td/div/input[2]" value="Generar"></td></tr>
  </table>
  <div id="registro">
    <input type="text" name="fecha">
    <select name="cboOPF">
      <option>7027 - REUNION DE SEGUIMIENTO ECOPETROL</option>
      <option>7028 - DISEÑO DE PLANOS</option>
      <option>7029 - MONTAJE</option>
      <option>7030 - ADMINISTRACION</option>
      <option>9000 - OTROS</option>
    </select>
    <select name="cboOperario">
      <option>NELSON RANGEL - OP003</option>
      <option>OTRO - OP004</option>
      <option>ANA PEREZ - OP005</option>
    </select>
    <input type="text" name="txtActividad">
    <input type="text" name="txtTiempoOrdinario">
    <input type="text" name="txtTiempoExtra">
    <select name="cboEquipo">
      <option>EQUIPO 30 - ADMINISTRATIVO</option>
      <option>EQUIPO 31 - CAMPO</option>
    </select>
    <input type="button" data-xpath="/html/body/div[3]/table/tbody/tr[17]/td/div/input" value="Adicionar">
    <button data-xpath="/html/body/div[3]/table/tbody/tr[3]/td[1]/button">Nuevo registro</button>
  </div>
</body>
</html>`
